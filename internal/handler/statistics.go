package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/twentyab/stammtisch-tracker/internal/service"
	"github.com/twentyab/stammtisch-tracker/pkg/response"
)

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

func (h *StatsHandler) Register(r *gin.RouterGroup) {
	r.Group("/statistics").GET("", h.overview)
}

// overview serves the lifetime statistics across all recorded games,
// recomputed from the full history on every request.
func (h *StatsHandler) overview(c *gin.Context) {
	start := time.Now()
	overview, err := h.svc.StatisticsOverview(c.Request.Context())

	logger := log.With().
		Str("path", c.Request.URL.Path).
		Dur("duration", time.Since(start)).
		Logger()

	if err != nil {
		status, _ := response.MapError(err)
		logger.Error().Err(err).Int("status", status).Msg("failed to build statistics overview")
		response.WriteError(c, err)
		return
	}

	logger.Info().Int("status", http.StatusOK).Msg("statistics overview computed")
	response.WriteData(c, http.StatusOK, gin.H{"players": service.FlattenOverview(overview)})
}
