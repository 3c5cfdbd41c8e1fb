package handler

import (
	"career-ready/internal/delivery/http/dto"
	"career-ready/internal/pkg/response"
	"career-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	defaultJobLimit = 20
	maxJobLimit     = 50
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/jobs")
	grp.Get("/", h.List)
	grp.Get("/:job_id", h.Get)
	grp.Get("/:job_id/skills", h.Requirements)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", defaultJobLimit)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = defaultJobLimit
	}
	if limit > maxJobLimit {
		limit = maxJobLimit
	}

	items, err := h.uc.ListActiveJobs(c.Context(), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobListResponse{
		Items:  items,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	item, err := h.uc.GetJob(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	reqs, err := h.uc.ListRequirements(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobDetailResponse{
		JobItem:      item,
		Requirements: reqs,
	})
}

func (h *JobHandler) Requirements(c fiber.Ctx) error {
	jobID, err := uuidParam(c, "job_id")
	if err != nil {
		return err
	}

	reqs, err := h.uc.ListRequirements(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, reqs)
}
