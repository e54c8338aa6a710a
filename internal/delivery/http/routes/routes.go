package routes

import (
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything the router mounts. Nil handlers are skipped.
type Handlers struct {
	Health *handler.HealthHandler
	Skills *handler.SkillHandler
	Users  *handler.UserHandler
	Match  *handler.MatchHandler
	WS     *ws.Handler
}

type Registry struct {
	h Handlers
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{h: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.h)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.h.WS != nil {
		app.Get("/ws/session", r.h.WS.HandleSession)
	}
}
