package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/twentyab/stammtisch-tracker/internal/service"
	"github.com/twentyab/stammtisch-tracker/pkg/response"
)

type PlayerHandler struct {
	svc service.PlayerService
}

func NewPlayerHandler(svc service.PlayerService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	r.Group("/players").GET("", h.list)
}

func (h *PlayerHandler) list(c *gin.Context) {
	players, err := h.svc.ListPlayers(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, players)
}
