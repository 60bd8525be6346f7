package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/service"
	"github.com/twentyab/stammtisch-tracker/pkg/response"
)

type GameHandler struct {
	svc service.GameService
}

func NewGameHandler(svc service.GameService) *GameHandler { return &GameHandler{svc: svc} }

func (h *GameHandler) Register(r *gin.RouterGroup) {
	// Games are always created within a session.
	r.Group("/sessions").POST("/:id/games", h.create)
}

type createGameRequest struct {
	CallerID     int64                      `json:"caller_id"`
	TrumpSuit    string                     `json:"trump_suit"`
	HeartBlind   bool                       `json:"heart_blind"`
	Participants []model.NewGameParticipant `json:"participants"`
}

func (h *GameHandler) create(c *gin.Context) {
	sessionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}}))
		return
	}
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	suit, ok := model.ParseTrumpSuit(req.TrumpSuit)
	if !ok {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "trump_suit", Message: "must be one of HERZ, EICHEL, SCHELL, BLATT"}}))
		return
	}
	id, err := h.svc.CreateGame(c.Request.Context(), sessionID, req.CallerID, suit, req.HeartBlind, req.Participants)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, createdResponse{ID: id})
}
