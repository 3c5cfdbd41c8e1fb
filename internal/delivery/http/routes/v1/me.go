package v1

import "github.com/gofiber/fiber/v3"

// RegisterMe mounts the per-student routes, including the job-scoped
// readiness and resume actions.
func RegisterMe(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.StudentSkills != nil {
		h.StudentSkills.RegisterRoutes(r)
	}
	if h.Readiness != nil {
		h.Readiness.RegisterRoutes(r)
	}
	if h.Alerts != nil {
		h.Alerts.RegisterRoutes(r)
	}
	if h.Resume != nil {
		h.Resume.RegisterRoutes(r)
	}
}
