package handler

import (
	"context"

	"skill-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports the health of an optional dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	app   string
	store string
	cache Pinger
}

type healthResponse struct {
	App   string `json:"app"`
	Store string `json:"store"`
	Cache string `json:"cache"`
}

func NewHealthHandler(app, storeDriver string, cache Pinger) *HealthHandler {
	return &HealthHandler{app: app, store: storeDriver, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health always answers 200; the cache is optional and only reported.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	cache := "disabled"
	if h.cache != nil {
		cache = "up"
		if err := h.cache.Ping(c.Context()); err != nil {
			cache = "bypassed"
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, healthResponse{App: h.app, Store: h.store, Cache: cache})
}
