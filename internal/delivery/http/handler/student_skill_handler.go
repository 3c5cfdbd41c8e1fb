package handler

import (
	"strings"
	"time"

	"career-ready/internal/delivery/http/dto"
	"career-ready/internal/delivery/http/middleware"
	"career-ready/internal/pkg/response"
	"career-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StudentSkillHandler struct {
	uc usecase.SkillUsecase
}

func NewStudentSkillHandler(uc usecase.SkillUsecase) *StudentSkillHandler {
	return &StudentSkillHandler{uc: uc}
}

func (h *StudentSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.List)
	grp.Put("/:skill_id", h.Upsert)
	grp.Delete("/:skill_id", h.Delete)
}

func (h *StudentSkillHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListStudentSkills(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *StudentSkillHandler) Upsert(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	skillID, err := uuidParam(c, "skill_id")
	if err != nil {
		return err
	}

	var req dto.UpsertStudentSkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := usecase.UpsertStudentSkillInput{Level: req.Level, Source: req.Source}
	if req.LastUsed != nil && strings.TrimSpace(*req.LastUsed) != "" {
		t, err := parseDate(*req.LastUsed)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", map[string]string{"last_used": "date"}, err)
		}
		in.LastUsed = &t
	}

	item, err := h.uc.UpsertStudentSkill(c.Context(), userID, skillID, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *StudentSkillHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	skillID, err := uuidParam(c, "skill_id")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveStudentSkill(c.Context(), userID, skillID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
