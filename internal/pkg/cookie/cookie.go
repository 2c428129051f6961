package cookie

import (
	"net/http"
	"time"

	"fractional-market/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

var sameSiteModes = map[string]http.SameSite{
	"Strict": http.SameSiteStrictMode,
	"Lax":    http.SameSiteLaxMode,
	"None":   http.SameSiteNoneMode,
}

// SetAccessToken stores the token HttpOnly so browser checkouts need no script access to it.
func SetAccessToken(c *gin.Context, cfg config.CookieConfig, accessToken string, expiresIn time.Duration) {
	http.SetCookie(c.Writer, accessCookie(cfg, accessToken, int(expiresIn.Seconds())))
}

func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	http.SetCookie(c.Writer, accessCookie(cfg, "", -1))
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func accessCookie(cfg config.CookieConfig, value string, maxAge int) *http.Cookie {
	mode, ok := sameSiteModes[cfg.SameSite]
	if !ok {
		mode = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     AccessTokenCookieName,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   maxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: mode,
	}
}
