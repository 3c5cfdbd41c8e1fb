package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"career-ready/internal/config"
	"career-ready/internal/database/migration"
	"career-ready/internal/delivery/http/handler"
	"career-ready/internal/delivery/http/middleware"
	"career-ready/internal/delivery/http/routes"
	v1 "career-ready/internal/delivery/http/routes/v1"
	"career-ready/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an existing container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects dependencies, applies pending migrations and starts the
// background WebSocket hub and alert relay. The returned cleanup stops them.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if _, err := (migration.Runner{Dir: cfg.App.MigrationsDir, Logger: c.Logger}).Run(context.Background(), c.DB); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go c.Hub.Run(ctx)
	if c.Redis.Available() {
		relay := ws.NewAlertRelay(c.Redis, c.Alerts, c.Hub, cfg.WS.AlertChannel, c.Logger)
		go relay.Run(ctx)
	} else {
		c.Logger.Printf("Alert relay disabled | reason=redis_unavailable")
	}

	cleanup := func() error {
		cancel()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(c.JWT)
	api := v1.Handlers{
		Skills:        handler.NewSkillHandler(c.Skills),
		StudentSkills: handler.NewStudentSkillHandler(c.Skills),
		Jobs:          handler.NewJobHandler(c.Jobs),
		Readiness:     handler.NewReadinessHandler(c.Readiness),
		Alerts:        handler.NewAlertHandler(c.Alerts),
		Resume:        handler.NewResumeHandler(c.Resume),
	}

	routes.NewRegistry(
		handler.NewHealthHandler(c.Health),
		ws.NewHandler(c.Hub, c.JWT, c.Config.WS, c.Logger),
		api,
		authMw.Middleware(),
	).Register(app)
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
