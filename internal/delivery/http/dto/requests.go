package dto

// UpsertStudentSkillRequest is the body of PUT /me/skills/:skill_id.
// LastUsed accepts YYYY-MM-DD or RFC3339.
type UpsertStudentSkillRequest struct {
	Level    string  `json:"level" validate:"required,max=20"`
	LastUsed *string `json:"last_used" validate:"omitempty,max=40"`
	Source   *string `json:"source" validate:"omitempty,max=50"`
}

type ResumeAnalysisRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
}
