package handler

import (
	"career-ready/internal/delivery/http/dto"
	"career-ready/internal/pkg/response"
	"career-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AlertHandler struct {
	uc usecase.AlertUsecase
}

func NewAlertHandler(uc usecase.AlertUsecase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

func (h *AlertHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/alerts")
	grp.Get("/", h.List)
	grp.Get("/unread-count", h.UnreadCount)
	grp.Post("/:id/read", h.MarkRead)
}

func (h *AlertHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	unreadOnly, err := parseQueryBool(c, "unread_only")
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), userID, unreadOnly)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *AlertHandler) UnreadCount(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	n, err := h.uc.UnreadCount(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.UnreadCountResponse{Count: n})
}

func (h *AlertHandler) MarkRead(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	alertID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.uc.MarkRead(c.Context(), userID, alertID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}
