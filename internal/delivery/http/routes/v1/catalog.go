package v1

import "github.com/gofiber/fiber/v3"

func RegisterCatalog(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Skills != nil {
		h.Skills.RegisterRoutes(r)
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(r)
	}
}
