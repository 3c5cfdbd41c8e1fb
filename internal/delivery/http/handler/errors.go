package handler

import (
	"errors"

	"career-ready/internal/ai/ats"
	"career-ready/internal/delivery/http/middleware"
	"career-ready/internal/pkg/response"
	"career-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *ats.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", verr.Fields, err)
	case errors.Is(err, usecase.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", nil, err)
	case errors.Is(err, usecase.ErrNoRequirementsDefined):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No skill requirements defined for this job", nil, err)
	case errors.Is(err, usecase.ErrAnalysisFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, "AI analysis failed", nil, err)
	case errors.Is(err, usecase.ErrInvalidAIResponseFormat):
		return middleware.NewAppError(fiber.StatusBadGateway, "AI returned an invalid response", nil, err)
	case errors.Is(err, usecase.ErrAnalysisInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "Resume analysis already in progress", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrAlertNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Alert not found", nil, err)
	case errors.Is(err, usecase.ErrReadinessNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Readiness score not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill level", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
