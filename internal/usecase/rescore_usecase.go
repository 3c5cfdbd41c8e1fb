package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"career-ready/internal/repository"
	"career-ready/internal/worker"

	"github.com/google/uuid"
)

type RescoreOptions struct {
	Workers int
	RPS     int
}

type RescoreSummary struct {
	Users    int
	Jobs     int
	Scored   int
	Skipped  int
	Failed   int
	Duration time.Duration
}

type calculator interface {
	Calculate(ctx context.Context, userID, jobID uuid.UUID) (ReadinessItem, error)
}

// Rescore recomputes readiness for every student with declared skills
// against every active job that has requirements.
type Rescore struct {
	students repository.StudentSkillRepository
	jobs     repository.JobRepository
	calc     calculator
	logger   *log.Logger
}

func NewRescoreUsecase(students repository.StudentSkillRepository, jobs repository.JobRepository, calc calculator, logger *log.Logger) *Rescore {
	if logger == nil {
		logger = log.Default()
	}
	return &Rescore{students: students, jobs: jobs, calc: calc, logger: logger}
}

func (u *Rescore) Run(ctx context.Context, opts RescoreOptions) (RescoreSummary, error) {
	started := time.Now()

	userIDs, err := u.students.ListUserIDs(ctx)
	if err != nil {
		return RescoreSummary{}, fmt.Errorf("list users: %w", err)
	}
	jobIDs, err := u.jobs.ListActiveIDsWithRequirements(ctx)
	if err != nil {
		return RescoreSummary{}, fmt.Errorf("list jobs: %w", err)
	}

	summary := RescoreSummary{Users: len(userIDs), Jobs: len(jobIDs)}
	if len(userIDs) == 0 || len(jobIDs) == 0 {
		summary.Duration = time.Since(started)
		return summary, nil
	}

	pool := worker.NewPool(opts.Workers, opts.Workers*2)
	pool.SetRateLimit(opts.RPS)
	results := pool.Run(ctx)

	go func() {
		defer pool.Close()
		for _, userID := range userIDs {
			for _, jobID := range jobIDs {
				userID, jobID := userID, jobID
				ok := pool.Submit(ctx, worker.Task{
					Key: userID.String() + "/" + jobID.String(),
					Run: func(ctx context.Context) error {
						_, err := u.calc.Calculate(ctx, userID, jobID)
						return err
					},
				})
				if !ok {
					return
				}
			}
		}
	}()

	for r := range results {
		switch {
		case r.Err == nil:
			summary.Scored++
		case errors.Is(r.Err, ErrNoRequirementsDefined), errors.Is(r.Err, ErrJobNotFound):
			summary.Skipped++
		default:
			summary.Failed++
			u.logger.Printf("Rescore task failed | key=%s err=%v", r.Key, r.Err)
		}
	}

	summary.Duration = time.Since(started)
	u.logger.Printf("Rescore completed | users=%d jobs=%d scored=%d skipped=%d failed=%d duration=%s",
		summary.Users, summary.Jobs, summary.Scored, summary.Skipped, summary.Failed, summary.Duration)

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}
