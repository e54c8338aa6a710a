package ws

import (
	"context"
	"net/http"

	"skill-match/internal/logging"
	"skill-match/internal/session"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

type Handler struct {
	base   context.Context
	hub    *Hub
	deps   session.Deps
	logger logging.Logger
}

// NewHandler serves form sessions. base bounds every session's lifetime;
// cancelling it ends all sessions on shutdown.
func NewHandler(base context.Context, hub *Hub, deps session.Deps, logger logging.Logger) *Handler {
	return &Handler{base: base, hub: hub, deps: deps, logger: logging.OrNop(logger)}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) HandleSession(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	return adaptor.HTTPHandlerFunc(h.serve)(c)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "ws upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.logger)
	s := session.New(h.base, h.deps, client.Emit)
	client.Attach(s)

	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
	s.Start()
}
