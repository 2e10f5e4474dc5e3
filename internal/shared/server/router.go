package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"projectdocs-backend/internal/documents"
	"projectdocs-backend/internal/services/health"
	"projectdocs-backend/internal/shared/config"
	"projectdocs-backend/internal/shared/metrics"
	"projectdocs-backend/internal/shared/server/middleware"
	"projectdocs-backend/internal/shared/server/respond"
)

// RouterDeps lists the handlers mounted by NewRouter.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	Health          *health.Service
	UploadRule      middleware.RateLimitRule
	// LocalFiles, when set, is served under /files.
	LocalFiles FileOpener
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		status, healthy := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	)))

	if deps.LocalFiles != nil {
		r.GET("/files/*key", serveFiles(deps.LocalFiles))
	}

	if deps.DocumentHandler != nil {
		limiter := middleware.NewRateLimiter(nil)
		deps.DocumentHandler.RegisterRoutes(r, middleware.RateLimit(deps.UploadRule, limiter))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
