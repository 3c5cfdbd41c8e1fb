package handler

import (
	"career-ready/internal/pkg/response"
	"career-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReadinessHandler struct {
	uc usecase.ReadinessUsecase
}

func NewReadinessHandler(uc usecase.ReadinessUsecase) *ReadinessHandler {
	return &ReadinessHandler{uc: uc}
}

func (h *ReadinessHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs/:job_id/readiness", h.Calculate)
	r.Get("/jobs/:job_id/readiness", h.Get)
	r.Get("/me/readiness", h.List)
}

func (h *ReadinessHandler) Calculate(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	item, err := h.uc.Calculate(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *ReadinessHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	item, err := h.uc.GetForJob(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *ReadinessHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
