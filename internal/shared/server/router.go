package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-email-sender/internal/generation"
	"smart-email-sender/internal/outreach"
	"smart-email-sender/internal/services/health"
	"smart-email-sender/internal/shared/config"
	"smart-email-sender/internal/shared/metrics"
	"smart-email-sender/internal/shared/server/middleware"
	"smart-email-sender/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config            config.Config
	Health            *health.Service
	GenerationHandler *generation.Handler
	OutreachHandler   *outreach.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !config.IsDevLike(deps.Config.Env) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	api.GET("/health/model", func(c *gin.Context) {
		st := deps.Health.ModelStatus(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	})

	resume := api.Group("/resume", middleware.BodyLimit(deps.Config.MaxUploadBytes))
	if deps.GenerationHandler != nil {
		deps.GenerationHandler.RegisterRoutes(resume)
	}
	if deps.OutreachHandler != nil {
		deps.OutreachHandler.RegisterRoutes(resume)
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
