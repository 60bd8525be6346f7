package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/twentyab/stammtisch-tracker/internal/model"
	"github.com/twentyab/stammtisch-tracker/internal/service"
	"github.com/twentyab/stammtisch-tracker/pkg/response"
)

// dateLayout is the wire format for session dates: a whole calendar day,
// no time-of-day, no timezone shift.
const dateLayout = "2006-01-02"

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler { return &SessionHandler{svc: svc} }

func (h *SessionHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/sessions")
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
	}
}

type createSessionRequest struct {
	Date string `json:"date"`
	// Players lists names in seat order; seat indexes are assigned 0..n-1.
	Players []string `json:"players"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func (h *SessionHandler) create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "date", Message: "must be a YYYY-MM-DD date"}}))
		return
	}
	players := make([]model.NewSessionPlayer, len(req.Players))
	for i, name := range req.Players {
		players[i] = model.NewSessionPlayer{Name: name, SeatIndex: i}
	}
	id, err := h.svc.CreateSession(c.Request.Context(), date, players)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, createdResponse{ID: id})
}

func (h *SessionHandler) list(c *gin.Context) {
	summaries, err := h.svc.SessionSummaries(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, summaries)
}

func (h *SessionHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}}))
		return
	}
	detail, err := h.svc.SessionDetail(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, detail)
}
