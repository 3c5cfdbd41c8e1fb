package app

import (
	"context"
	"log"
	"strings"
	"time"

	"career-ready/internal/ai/ats"
	"career-ready/internal/config"
	dbpostgres "career-ready/internal/database/postgres"
	"career-ready/internal/infrastructure/cache"
	"career-ready/internal/pkg/jwt"
	"career-ready/internal/repository"
	"career-ready/internal/usecase"
	"career-ready/internal/ws"
)

// Container owns the long-lived dependencies shared by the HTTP server and
// the operator CLI.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    *dbpostgres.Pool
	Redis *cache.Redis
	JWT   *jwt.HMACService
	Hub   *ws.Hub

	Skills    *usecase.Skill
	Jobs      *usecase.Job
	Readiness *usecase.Readiness
	Alerts    *usecase.Alert
	Resume    *usecase.Resume
	Health    *usecase.Health
	Rescore   *usecase.Rescore
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	rdb := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)

	completer, err := newCompleter(ctx, cfg.AI, logger)
	if err != nil {
		_ = rdb.Close()
		_ = db.Close()
		return nil, err
	}
	analyzer := ats.NewAnalyzer(completer, cfg.AI.RequestTimeout, logger)

	skillRepo := repository.NewPostgresSkillRepository(db)
	studentRepo := repository.NewPostgresStudentSkillRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	jobSkillRepo := repository.NewPostgresJobSkillRepository(db)
	scoreRepo := repository.NewPostgresReadinessRepository(db)
	alertRepo := repository.NewPostgresAlertRepository(db)
	analysisRepo := repository.NewPostgresResumeAnalysisRepository(db)

	readinessUC := usecase.NewReadinessUsecase(usecase.ReadinessDeps{
		Jobs:      jobRepo,
		JobSkills: jobSkillRepo,
		Skills:    skillRepo,
		Students:  studentRepo,
		Scores:    scoreRepo,
		Cache:     rdb,
		Notifier:  hub,
		Logger:    logger,
	})

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  rdb,
		JWT:    jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.Issuer),
		Hub:    hub,

		Skills:    usecase.NewSkillUsecase(skillRepo, studentRepo, rdb, logger),
		Jobs:      usecase.NewJobUsecase(jobRepo, jobSkillRepo),
		Readiness: readinessUC,
		Alerts:    usecase.NewAlertUsecase(alertRepo, hub, logger),
		Resume:    usecase.NewResumeUsecase(jobRepo, jobSkillRepo, analysisRepo, analyzer, rdb, logger),
		Health:    usecase.NewHealthUsecase(db, rdb, logger),
		Rescore:   usecase.NewRescoreUsecase(studentRepo, jobRepo, readinessUC, logger),
	}, nil
}

// newCompleter picks the completion backend. Without an API key resume
// analysis is disabled and answers with ErrAnalysisFailed.
func newCompleter(ctx context.Context, cfg config.AIConfig, logger *log.Logger) (ats.Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Printf("AI backend disabled | reason=missing_api_key")
		return nil, nil
	}

	switch cfg.Provider {
	case config.AIProviderGemini:
		c, err := ats.NewGeminiCompleter(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		logger.Printf("AI backend ready | provider=gemini model=%s", cfg.Model)
		return c, nil
	default:
		logger.Printf("AI backend ready | provider=openai model=%s base_url=%s", cfg.Model, cfg.BaseURL)
		return ats.NewOpenAICompleter(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
