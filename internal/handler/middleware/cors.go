package middleware

import (
	"log/slog"

	"fractional-market/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware serves browser clients only. Provider callbacks are
// server-to-server and never send an Origin header, so they pass through untouched.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.AllowOrigins
	corsCfg.AllowMethods = cfg.AllowMethods
	corsCfg.AllowHeaders = cfg.AllowHeaders
	corsCfg.ExposeHeaders = cfg.ExposeHeaders
	corsCfg.AllowCredentials = cfg.AllowCredentials
	corsCfg.MaxAge = cfg.MaxAge

	if len(corsCfg.AllowOrigins) == 0 {
		slog.Warn("CORS allow list is empty, cross-origin browser requests will be refused")
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	}

	slog.Info("CORS middleware initialized",
		"allow_origins", cfg.AllowOrigins,
		"allow_credentials", cfg.AllowCredentials)
	return cors.New(corsCfg)
}
