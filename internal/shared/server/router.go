package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"offerfit-backend/internal/account"
	googleauth "offerfit-backend/internal/auth"
	"offerfit-backend/internal/evaluations"
	"offerfit-backend/internal/offers"
	"offerfit-backend/internal/proofdocs"
	"offerfit-backend/internal/services/health"
	"offerfit-backend/internal/shared/config"
	"offerfit-backend/internal/shared/metrics"
	"offerfit-backend/internal/shared/server/middleware"
	"offerfit-backend/internal/shared/server/respond"
	"offerfit-backend/internal/simulations"
	"offerfit-backend/internal/snapshots"
	"offerfit-backend/internal/uploads"
	"offerfit-backend/internal/usage"
	"offerfit-backend/internal/users"
)

// RouterDeps carries the wired handlers and services the router exposes.
type RouterDeps struct {
	Config            config.Config
	Health            *health.Service
	OfferHandler      *offers.Handler
	EvaluationHandler *evaluations.Handler
	SnapshotHandler   *snapshots.Handler
	ProofDocHandler   *proofdocs.Handler
	SimulationHandler *simulations.Handler
	UsageHandler      *usage.Handler
	UserHandler       *users.Handler
	AccountHandler    *account.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Registered before the middleware chain so scrapers reach it without identity.
	r.GET("/metrics", metrics.Handler())

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(apiRateLimit()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status(c.Request.Context()))
	})

	deps.GoogleAuth.RegisterRoutes(api)
	deps.OfferHandler.RegisterRoutes(api)
	deps.EvaluationHandler.RegisterRoutes(api)
	deps.SnapshotHandler.RegisterRoutes(api)
	deps.ProofDocHandler.RegisterRoutes(api)
	deps.SimulationHandler.RegisterRoutes(api)
	deps.UsageHandler.RegisterRoutes(api)
	deps.UserHandler.RegisterRoutes(api)
	deps.AccountHandler.RegisterRoutes(api)
	uploads.RegisterRoutes(api)

	if deps.Config.Env == "dev" {
		dev := api.Group("/dev")
		deps.UsageHandler.RegisterDevRoutes(dev)
	}

	return r
}

// apiRateLimit throttles the expensive evaluate route and the result polling
// route per principal; everything else passes through.
func apiRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		GroupFor: func(c *gin.Context) string {
			switch {
			case c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/offers/:id/evaluate":
				return "EVALUATE"
			case c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/evaluations/:id":
				return "POLLING"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"EVALUATE": {Rate: 0.5, Burst: 5},
			"POLLING":  {Rate: 5, Burst: 20},
		},
	}
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
