package app

import (
	"context"
	"fmt"
	"strings"

	"skill-match/internal/config"
	"skill-match/internal/delivery/http/handler"
	"skill-match/internal/delivery/http/middleware"
	"skill-match/internal/delivery/http/routes"
	"skill-match/internal/logging"
	"skill-match/internal/session"
	"skill-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of c. base bounds websocket sessions and
// the hub; cancel it on shutdown.
func New(base context.Context, c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(base, f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container and HTTP app and starts the session hub.
// The returned cleanup stops the hub and closes stores and cache.
func Bootstrap(cfg config.Config, logger logging.Logger) (*App, func() error, error) {
	ctx, cancel := context.WithCancel(context.Background())

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	go c.Hub.Run(ctx)

	app := New(ctx, c)
	cleanup := func() error {
		cancel()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger logging.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger)
	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(base context.Context, app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	var cachePinger handler.Pinger
	if c.Config.RedisEnabled() {
		cachePinger = c.Cache
	}

	sessionDeps := session.Deps{
		Directory:    c.Directory,
		Matching:     c.Matching,
		Registration: c.Registration,
		Logger:       c.Logger,
		Debounce:     c.Config.Matching.SearchDebounce,
		NameCacheMax: c.Config.Matching.NameCacheMax,
		NameCacheTTL: c.Config.Matching.NameCacheTTL,
	}

	routes.NewRegistry(routes.Handlers{
		Health: handler.NewHealthHandler(c.Config.App.AppName, c.Config.Store.Driver, cachePinger),
		Skills: handler.NewSkillHandler(c.Directory),
		Users:  handler.NewUserHandler(c.Registration),
		Match:  handler.NewMatchHandler(c.Matching),
		WS:     ws.NewHandler(base, c.Hub, sessionDeps, c.Logger),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
