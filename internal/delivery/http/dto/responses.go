package dto

import "career-ready/internal/usecase"

type JobListResponse struct {
	Items  []usecase.JobItem `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type JobDetailResponse struct {
	usecase.JobItem
	Requirements []usecase.RequirementItem `json:"requirements"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
