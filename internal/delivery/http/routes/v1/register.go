package v1

import (
	"career-ready/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Skills        *handler.SkillHandler
	StudentSkills *handler.StudentSkillHandler
	Jobs          *handler.JobHandler
	Readiness     *handler.ReadinessHandler
	Alerts        *handler.AlertHandler
	Resume        *handler.ResumeHandler
}

// Register mounts every /api/v1 route behind auth.
func Register(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	protected := r
	if auth != nil {
		protected = r.Group("", auth)
	}

	RegisterCatalog(protected, h)
	RegisterMe(protected, h)
}
