package handler

import (
	"career-ready/internal/delivery/http/dto"
	"career-ready/internal/pkg/response"
	"career-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs/:job_id/resume-analysis", h.Analyze)
	r.Get("/me/resume-analyses", h.List)
}

func (h *ResumeHandler) Analyze(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	var req dto.ResumeAnalysisRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	item, err := h.uc.Analyze(c.Context(), userID, jobID, req.FileName)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, item)
}

func (h *ResumeHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
