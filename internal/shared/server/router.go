package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resume-wizard-backend/internal/auth"
	"resume-wizard-backend/internal/resumes"
	"resume-wizard-backend/internal/shared/config"
	"resume-wizard-backend/internal/shared/metrics"
	"resume-wizard-backend/internal/shared/server/middleware"
	"resume-wizard-backend/internal/shared/server/respond"
	"resume-wizard-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config        config.Config
	UserHandler   *users.Handler
	ResumeHandler *resumes.Handler
	GoogleAuth    *googleauth.GoogleService
	RateLimiter   *middleware.RateLimiter
}

// generateRule bounds resume generation to one document per two seconds
// with a small burst, per user.
var generateRule = middleware.RateLimitRule{Rate: 0.5, Burst: 5}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.UserHandler != nil {
		deps.UserHandler.RegisterPublicRoutes(api)
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		limiter := deps.RateLimiter
		if limiter == nil {
			limiter = middleware.NewRateLimiter(nil)
		}
		deps.ResumeHandler.RegisterRoutes(api, middleware.RateLimit(limiter, generateRule))
	}

	if deps.Config.Env == "dev" {
		api.GET("/metrics", metrics.Handler())
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
