package handler

import (
	"career-ready/internal/pkg/response"
	"career-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	uc usecase.HealthUsecase
}

func NewHealthHandler(uc usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

// Check answers 503 only when Postgres is unreachable.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if h.uc == nil {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	}

	st := h.uc.Check(c.Context())
	if st.Status == "down" {
		return response.Error(c, fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, st)
	}
	return response.Success(c, fiber.StatusOK, st.Status, st)
}
