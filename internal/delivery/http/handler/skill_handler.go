package handler

import (
	"career-ready/internal/pkg/response"
	"career-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Get("/:skill_id", h.Get)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *SkillHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "skill_id")
	if err != nil {
		return err
	}
	item, err := h.uc.GetSkill(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}
