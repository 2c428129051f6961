package gateway

import (
	"sort"

	"fractional-market/internal/domain/payment"
	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/usecase/shared"
)

// Registry maps provider names to gateways. It is filled once at startup and read-only afterwards.
type Registry struct {
	gateways map[payment.Provider]shared.PaymentGateway
}

func NewRegistry(gateways ...shared.PaymentGateway) *Registry {
	m := make(map[payment.Provider]shared.PaymentGateway, len(gateways))
	for _, g := range gateways {
		m[g.Provider()] = g
	}
	return &Registry{gateways: m}
}

func (r *Registry) Get(provider payment.Provider) (shared.PaymentGateway, error) {
	g, ok := r.gateways[provider]
	if !ok {
		return nil, errs.Wrapf(payment.ErrUnknownProvider, "provider %q", provider)
	}
	return g, nil
}

func (r *Registry) Available() []payment.Provider {
	out := make([]payment.Provider, 0, len(r.gateways))
	for p := range r.gateways {
		out = append(out, p)
	}
	sortProviders(out)
	return out
}

func (r *Registry) Enabled() []payment.Provider {
	out := make([]payment.Provider, 0, len(r.gateways))
	for p, g := range r.gateways {
		if g.Enabled() {
			out = append(out, p)
		}
	}
	sortProviders(out)
	return out
}

func sortProviders(ps []payment.Provider) {
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
}
