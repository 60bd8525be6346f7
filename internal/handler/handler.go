package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/twentyab/stammtisch-tracker/internal/service"
	"github.com/twentyab/stammtisch-tracker/internal/watch"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, sessionSvc service.SessionService, gameSvc service.GameService, playerSvc service.PlayerService, statsSvc service.StatsService, hub *watch.Hub) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewSessionHandler(sessionSvc).Register(api)
		NewGameHandler(gameSvc).Register(api)
		NewPlayerHandler(playerSvc).Register(api)
		NewStatsHandler(statsSvc).Register(api)
		NewWatchHandler(hub).Register(api)
	}
}
