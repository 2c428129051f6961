package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"fractional-market/internal/domain/payment"
	"fractional-market/internal/pkg/errs"

	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

// providerClient is the outbound HTTP side shared by every gateway. The limiter
// keeps a burst of order creations under the provider's request quota.
type providerClient struct {
	http    *http.Client
	limiter *rate.Limiter
}

func newProviderClient(timeout time.Duration, requestsPerSecond float64) *providerClient {
	limit := rate.Inf
	burst := 1
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
		burst = max(int(requestsPerSecond), 1)
	}
	return &providerClient{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// do returns the body of a 2xx response. Every transport failure, throttle or
// non-2xx answer is reported as payment.ErrGatewayUnavailable.
func (c *providerClient) do(ctx context.Context, req *http.Request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errs.Wrapf(payment.ErrGatewayUnavailable, "rate limiter: %v", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Wrapf(payment.ErrGatewayUnavailable, "%s %s: %v", req.Method, redact(req.URL), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errs.Wrapf(payment.ErrGatewayUnavailable, "read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.Wrapf(payment.ErrGatewayUnavailable, "%s %s: status %d", req.Method, redact(req.URL), resp.StatusCode)
	}
	return body, nil
}

func redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.Scheme + "://" + u.Host + u.Path
}

// withOrderID appends order_id to a redirect URL, keeping any existing query and fragment.
func withOrderID(raw, orderID string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("order_id", orderID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
