package repository

import (
	"context"
	"encoding/json"

	"career-ready/internal/database"
	"career-ready/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeAnalysisRepository interface {
	Create(ctx context.Context, a resume.Analysis) (resume.Analysis, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]resume.Analysis, error)
}

type PostgresResumeAnalysisRepository struct {
	db database.DB
}

func NewPostgresResumeAnalysisRepository(db database.DB) *PostgresResumeAnalysisRepository {
	return &PostgresResumeAnalysisRepository{db: db}
}

// analysisDocument is the JSON stored in resume_analyses.analysis_result.
type analysisDocument struct {
	ATSScore        int      `json:"atsScore"`
	ExtractedSkills []string `json:"extractedSkills"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
	Suggestions     string   `json:"suggestions"`
}

func (r *PostgresResumeAnalysisRepository) Create(ctx context.Context, a resume.Analysis) (resume.Analysis, error) {
	doc, err := json.Marshal(analysisDocument{
		ATSScore:        a.ATSScore,
		ExtractedSkills: nonNil(a.ExtractedSkills),
		MatchedSkills:   nonNil(a.MatchedSkills),
		MissingSkills:   nonNil(a.MissingSkills),
		Suggestions:     a.Suggestions,
	})
	if err != nil {
		return resume.Analysis{}, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO resume_analyses (user_id, file_name, target_job_id, ats_score, extracted_skills, analysis_result)
		 VALUES ($1, $2, $3, $4, $5, $6::jsonb)
		 RETURNING id, created_at`,
		a.UserID,
		a.FileName,
		a.TargetJobID,
		a.ATSScore,
		nonNil(a.ExtractedSkills),
		string(doc),
	)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return resume.Analysis{}, err
	}
	return a, nil
}

func (r *PostgresResumeAnalysisRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]resume.Analysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, file_name, target_job_id, ats_score, analysis_result, created_at
		 FROM resume_analyses
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Analysis, 0)
	for rows.Next() {
		var a resume.Analysis
		var raw []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.FileName, &a.TargetJobID, &a.ATSScore, &raw, &a.CreatedAt); err != nil {
			return nil, err
		}
		var doc analysisDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		a.ExtractedSkills = nonNil(doc.ExtractedSkills)
		a.MatchedSkills = nonNil(doc.MatchedSkills)
		a.MissingSkills = nonNil(doc.MissingSkills)
		a.Suggestions = doc.Suggestions
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
