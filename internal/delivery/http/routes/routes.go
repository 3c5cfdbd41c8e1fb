package routes

import (
	"career-ready/internal/delivery/http/handler"
	v1 "career-ready/internal/delivery/http/routes/v1"
	"career-ready/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	ws     *ws.Handler
	v1     v1.Handlers
	auth   fiber.Handler
}

func NewRegistry(health *handler.HealthHandler, wsHandler *ws.Handler, api v1.Handlers, auth fiber.Handler) *Registry {
	return &Registry{health: health, ws: wsHandler, v1: api, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		r.ws.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1, r.auth)
}
