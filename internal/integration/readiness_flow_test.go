package integration

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"career-ready/internal/config"
	"career-ready/internal/database"
	"career-ready/internal/database/migration"
	dbpostgres "career-ready/internal/database/postgres"
	"career-ready/internal/delivery/http/handler"
	"career-ready/internal/delivery/http/middleware"
	"career-ready/internal/delivery/http/routes"
	v1 "career-ready/internal/delivery/http/routes/v1"
	"career-ready/internal/pkg/jwt"
	"career-ready/internal/repository"
	"career-ready/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type seeded struct {
	userID   uuid.UUID
	jobID    uuid.UUID
	emptyJob uuid.UUID
	alertID  uuid.UUID
	skillIDs map[string]uuid.UUID
}

func TestIntegration_ReadinessAndAlerts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedData(t, ctx, db)
	defer cleanupSeed(ctx, db, seed)

	svc := jwt.NewHMACService("integration-secret", 15*time.Minute, "")
	app := newTestFiberApp(db, svc)
	token, err := svc.GenerateAccessToken(seed.userID, "")
	require.NoError(t, err)

	status, sr := call(t, app, token, "POST", "/api/v1/jobs/"+seed.jobID.String()+"/readiness")
	require.Equal(t, 200, status, sr.Message)

	var item usecase.ReadinessItem
	require.NoError(t, json.Unmarshal(sr.Data, &item))
	assert.Equal(t, 52, item.Score)
	assert.Equal(t, "partially_ready", item.Status)
	assert.Equal(t, []string{names(seed)["Docker"]}, item.MissingSkills)
	assert.Equal(t, []string{names(seed)["PostgreSQL"]}, item.WeakSkills)
	assert.Equal(t, []string{names(seed)["Go"]}, item.StrongSkills)

	// recalculation overwrites the single row for the pair
	status, _ = call(t, app, token, "POST", "/api/v1/jobs/"+seed.jobID.String()+"/readiness")
	require.Equal(t, 200, status)
	var rows int
	require.NoError(t, db.QueryRow(ctx, `SELECT count(*) FROM readiness_scores WHERE user_id = $1 AND job_id = $2`, seed.userID, seed.jobID).Scan(&rows))
	assert.Equal(t, 1, rows)

	status, sr = call(t, app, token, "POST", "/api/v1/jobs/"+seed.emptyJob.String()+"/readiness")
	assert.Equal(t, 422, status, sr.Message)

	status, _ = call(t, app, token, "GET", "/api/v1/jobs/"+seed.jobID.String()+"/readiness")
	assert.Equal(t, 200, status)

	status, sr = call(t, app, token, "GET", "/api/v1/me/alerts/unread-count")
	require.Equal(t, 200, status)
	assert.JSONEq(t, `{"count":1}`, string(sr.Data))

	for i := 0; i < 2; i++ {
		status, _ = call(t, app, token, "POST", "/api/v1/me/alerts/"+seed.alertID.String()+"/read")
		assert.Equal(t, 200, status)
	}

	status, sr = call(t, app, token, "GET", "/api/v1/me/alerts?unread_only=true")
	require.Equal(t, 200, status)
	assert.JSONEq(t, `[]`, string(sr.Data))

	other, err := svc.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)
	status, _ = call(t, app, other, "POST", "/api/v1/me/alerts/"+seed.alertID.String()+"/read")
	assert.Equal(t, 404, status)
}

func names(s seeded) map[string]string {
	out := make(map[string]string, len(s.skillIDs))
	for k := range s.skillIDs {
		out[k] = testSkillName(s, k)
	}
	return out
}

func testSkillName(s seeded, base string) string {
	return "IT " + base + " " + s.userID.String()[:8]
}

func connectTestDB(t *testing.T, ctx context.Context) *dbpostgres.Pool {
	t.Helper()

	host := stringsOrDefault(os.Getenv("CAREER_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("CAREER_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("CAREER_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("CAREER_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("CAREER_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("CAREER_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set CAREER_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}, nil)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}
	migDir := filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..", "migrations"))

	if _, err := (migration.Runner{Dir: migDir}).Run(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func seedData(t *testing.T, ctx context.Context, db database.DB) seeded {
	t.Helper()

	s := seeded{userID: uuid.New(), skillIDs: map[string]uuid.UUID{}}
	for _, base := range []string{"Go", "PostgreSQL", "Docker"} {
		var id uuid.UUID
		err := db.QueryRow(ctx,
			`INSERT INTO skills (name, category) VALUES ($1, 'programming') RETURNING id`,
			testSkillName(s, base),
		).Scan(&id)
		require.NoError(t, err)
		s.skillIDs[base] = id
	}

	suffix := s.userID.String()[:8]
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO job_roles (title, company) VALUES ($1, 'IT Co') RETURNING id`,
		"Backend Engineer "+suffix,
	).Scan(&s.jobID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO job_roles (title, company) VALUES ($1, 'IT Co') RETURNING id`,
		"Empty Role "+suffix,
	).Scan(&s.emptyJob))

	reqs := []struct {
		skill string
		level string
	}{
		{"Go", "advanced"},
		{"PostgreSQL", "intermediate"},
		{"Docker", "beginner"},
	}
	for _, r := range reqs {
		_, err := db.Exec(ctx,
			`INSERT INTO job_skills (job_id, skill_id, required_level, weight) VALUES ($1, $2, $3::skill_level, 1)`,
			s.jobID, s.skillIDs[r.skill], r.level,
		)
		require.NoError(t, err)
	}

	for skillName, level := range map[string]string{"Go": "advanced", "PostgreSQL": "beginner"} {
		_, err := db.Exec(ctx,
			`INSERT INTO student_skills (user_id, skill_id, level, source) VALUES ($1, $2, $3::skill_level, 'manual')`,
			s.userID, s.skillIDs[skillName], level,
		)
		require.NoError(t, err)
	}

	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO alerts (user_id, type, title, message) VALUES ($1, 'job_eligible', 'You are close', 'Check the Backend Engineer role') RETURNING id`,
		s.userID,
	).Scan(&s.alertID))

	return s
}

func cleanupSeed(ctx context.Context, db database.DB, s seeded) {
	_, _ = db.Exec(ctx, `DELETE FROM alerts WHERE user_id = $1`, s.userID)
	_, _ = db.Exec(ctx, `DELETE FROM readiness_scores WHERE user_id = $1`, s.userID)
	_, _ = db.Exec(ctx, `DELETE FROM student_skills WHERE user_id = $1`, s.userID)
	_, _ = db.Exec(ctx, `DELETE FROM job_roles WHERE id = $1 OR id = $2`, s.jobID, s.emptyJob)
	for _, id := range s.skillIDs {
		_, _ = db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	}
}

func newTestFiberApp(db database.DB, svc jwt.Service) *fiber.App {
	logger := log.New(io.Discard, "", 0)

	skillRepo := repository.NewPostgresSkillRepository(db)
	studentRepo := repository.NewPostgresStudentSkillRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	jobSkillRepo := repository.NewPostgresJobSkillRepository(db)

	readinessUC := usecase.NewReadinessUsecase(usecase.ReadinessDeps{
		Jobs:      jobRepo,
		JobSkills: jobSkillRepo,
		Skills:    skillRepo,
		Students:  studentRepo,
		Scores:    repository.NewPostgresReadinessRepository(db),
		Logger:    logger,
	})
	alertUC := usecase.NewAlertUsecase(repository.NewPostgresAlertRepository(db), nil, logger)

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())

	routes.NewRegistry(nil, nil, v1.Handlers{
		Readiness: handler.NewReadinessHandler(readinessUC),
		Alerts:    handler.NewAlertHandler(alertUC),
	}, middleware.NewAuthMiddleware(svc).Middleware()).Register(app)
	return app
}

func call(t *testing.T, app *fiber.App, token, method, target string) (int, semanticResponse) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sr semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	return resp.StatusCode, sr
}

func stringsOrDefault(v string, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
