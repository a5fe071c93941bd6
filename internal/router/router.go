package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cybersec-git-expert/catalog-governance/internal/handler"
	"github.com/cybersec-git-expert/catalog-governance/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine      *gin.Engine
	auth        *middleware.AuthMiddleware
	activationH Handler
	pageH       Handler
	principalH  Handler
	h           *handler.Handler
	cors        middleware.CORSConfig
	timeout     middleware.TimeoutConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	activationH Handler,
	pageH Handler,
	principalH Handler,
	h *handler.Handler,
) *Router {
	return &Router{
		engine:      gin.New(),
		auth:        auth,
		activationH: activationH,
		pageH:       pageH,
		principalH:  principalH,
		h:           h,
		cors:        middleware.DefaultCORSConfig(),
		timeout:     middleware.DefaultTimeoutConfig(),
	}
}

// WithTimeout overrides the API group's request timeout.
func (r *Router) WithTimeout(d time.Duration) *Router {
	if d > 0 {
		r.timeout = middleware.TimeoutConfig{Duration: d}
	}
	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Setup() {
	r.engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(r.cors),
	)

	r.engine.GET("/health", r.h.HealthCheck)
	r.engine.GET("/live", r.h.LivenessCheck)
	r.engine.GET("/metrics", r.h.MetricsHandler)

	api := r.engine.Group("/api/v1")
	api.Use(
		middleware.Timeout(r.timeout),
		r.auth.Authenticate(),
	)

	r.activationH.RegisterRoutes(api)
	r.pageH.RegisterRoutes(api)
	r.principalH.RegisterRoutes(api)
}
