package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/twentyab/stammtisch-tracker/internal/watch"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Single local client; cross-origin checks add nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WatchHandler struct {
	hub *watch.Hub
}

func NewWatchHandler(hub *watch.Hub) *WatchHandler { return &WatchHandler{hub: hub} }

func (h *WatchHandler) Register(r *gin.RouterGroup) {
	r.GET("/watch", h.subscribe)
}

// subscribe upgrades the connection and streams view snapshots: an initial
// full set on connect, then a fresh set after every storage change.
func (h *WatchHandler) subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("watch upgrade failed")
		return
	}
	client := h.hub.Subscribe(conn)
	go client.WritePump()
	go client.ReadPump()
}
