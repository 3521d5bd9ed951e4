package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/domain/career"
	"talentbridge/internal/domain/confidence"
	"talentbridge/internal/domain/job"
	"talentbridge/internal/domain/ranking"
	"talentbridge/internal/domain/skill"
	"talentbridge/internal/domain/user"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type stubUsers struct {
	created usecase.CreateUserInput
	err     error
}

func (s *stubUsers) CreateUser(_ context.Context, in usecase.CreateUserInput) (user.User, error) {
	s.created = in
	if s.err != nil {
		return user.User{}, s.err
	}
	return user.User{ID: uuid.New(), Name: in.Name, Email: in.Email, ExperienceYears: in.ExperienceYears}, nil
}

func (s *stubUsers) GetUser(_ context.Context, id uuid.UUID) (user.User, error) {
	if s.err != nil {
		return user.User{}, s.err
	}
	return user.User{ID: id, Name: "Ada"}, nil
}

type stubUserSkills struct {
	err error
}

func (s *stubUserSkills) ListUserSkills(context.Context, uuid.UUID) ([]usecase.ScoredEntry, error) {
	return nil, s.err
}

func (s *stubUserSkills) AddUserSkill(_ context.Context, _ uuid.UUID, in usecase.AddUserSkillInput) (usecase.ScoredEntry, error) {
	if s.err != nil {
		return usecase.ScoredEntry{}, s.err
	}
	return usecase.ScoredEntry{
		Entry:       skill.ProfileEntry{ID: uuid.New(), Skill: skill.NewRef(in.SkillID, "Go"), SCI: 72.5},
		Computation: confidence.Result{SCI: 72.5},
	}, nil
}

func (s *stubUserSkills) TouchUserSkill(context.Context, uuid.UUID, uuid.UUID, time.Time) (usecase.ScoredEntry, error) {
	return usecase.ScoredEntry{}, s.err
}

func (s *stubUserSkills) SubmitAssessment(context.Context, uuid.UUID, uuid.UUID, usecase.SubmitAssessmentInput) (usecase.ScoredEntry, error) {
	return usecase.ScoredEntry{}, s.err
}

type stubRoles struct {
	depth *int
	err   error
}

func (s *stubRoles) CreateRole(context.Context, usecase.CreateRoleInput) (career.Role, error) {
	return career.Role{}, s.err
}

func (s *stubRoles) AnalyzeRoleGap(context.Context, uuid.UUID, uuid.UUID) (usecase.RoleGapReport, error) {
	return usecase.RoleGapReport{}, s.err
}

func (s *stubRoles) RecommendRoles(context.Context, uuid.UUID) (career.Recommendations, error) {
	return career.Recommendations{}, s.err
}

func (s *stubRoles) CareerPath(_ context.Context, roleID uuid.UUID, depth *int) (*career.PathNode, error) {
	s.depth = depth
	if s.err != nil {
		return nil, s.err
	}
	return &career.PathNode{RoleID: roleID, Title: "Engineer", Children: []*career.PathNode{{RoleID: uuid.New(), Title: "Lead"}}}, nil
}

type stubJobs struct {
	ranked []ranking.Ranked
	err    error
}

func (s *stubJobs) CreateJob(context.Context, usecase.CreateJobInput) (job.Job, error) {
	return job.Job{}, s.err
}

func (s *stubJobs) MatchJob(_ context.Context, _, jobID uuid.UUID) (usecase.JobMatchReport, error) {
	if s.err != nil {
		return usecase.JobMatchReport{}, s.err
	}
	return usecase.JobMatchReport{Job: job.Job{ID: jobID, Title: "Backend Engineer"}}, nil
}

func (s *stubJobs) Apply(context.Context, uuid.UUID, uuid.UUID) (usecase.ApplyResult, error) {
	return usecase.ApplyResult{}, s.err
}

func (s *stubJobs) RankCandidates(context.Context, uuid.UUID) ([]ranking.Ranked, error) {
	return s.ranked, s.err
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func newTestApp(register ...func(r fiber.Router)) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	for _, fn := range register {
		fn(app)
	}
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestUserHandler_Create(t *testing.T) {
	uc := &stubUsers{}
	app := newTestApp(NewUserHandler(uc).RegisterRoutes)

	status, env := doRequest(t, app, fiber.MethodPost, "/users", `{"name":"Ada","email":"ada@example.com","experience_years":4.5}`)

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "created", env.Message)
	assert.Equal(t, "Ada", uc.created.Name)
	assert.Equal(t, 4.5, uc.created.ExperienceYears)
}

func TestUserHandler_InvalidBodyIsBadRequest(t *testing.T) {
	app := newTestApp(NewUserHandler(&stubUsers{}).RegisterRoutes)

	status, env := doRequest(t, app, fiber.MethodPost, "/users", `{"name":`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "bad request", env.Message)
}

func TestUserHandler_GetInvalidID(t *testing.T) {
	app := newTestApp(NewUserHandler(&stubUsers{}).RegisterRoutes)

	status, _ := doRequest(t, app, fiber.MethodGet, "/users/not-a-uuid", "")

	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestMapUsecaseError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", usecase.ErrInvalidInput, fiber.StatusBadRequest},
		{"user not found", usecase.ErrUserNotFound, fiber.StatusNotFound},
		{"role not found", usecase.ErrRoleNotFound, fiber.StatusNotFound},
		{"duplicate skill", usecase.ErrUserSkillExists, fiber.StatusConflict},
		{"closed job", usecase.ErrJobClosed, fiber.StatusConflict},
		{"cooldown", usecase.ErrAssessmentCooldown, fiber.StatusTooManyRequests},
		{"in progress", usecase.ErrAssessmentInProgress, fiber.StatusTooManyRequests},
		{"no items", usecase.ErrNoAssessmentItems, fiber.StatusUnprocessableEntity},
		{"internal", usecase.ErrInternal, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr *middleware.AppError
			require.ErrorAs(t, mapUsecaseError(tt.err), &appErr)
			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}

	assert.NoError(t, mapUsecaseError(nil))
}

func TestUserHandler_NotFoundUsesErrorMessage(t *testing.T) {
	app := newTestApp(NewUserHandler(&stubUsers{err: usecase.ErrUserNotFound}).RegisterRoutes)

	status, env := doRequest(t, app, fiber.MethodGet, "/users/"+uuid.NewString(), "")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "user not found", env.Message)
}

func TestUserSkillHandler_Add(t *testing.T) {
	app := newTestApp(NewUserSkillHandler(&stubUserSkills{}).RegisterRoutes)
	skillID := uuid.New()

	status, env := doRequest(t, app, fiber.MethodPost, "/users/"+uuid.NewString()+"/skills",
		`{"skill_id":"`+skillID.String()+`","self_rating":4,"last_used_date":"2026-05-01T00:00:00Z","assessment_score":80}`)

	require.Equal(t, fiber.StatusCreated, status)

	var body struct {
		SkillID     uuid.UUID `json:"skill_id"`
		SCI         float64   `json:"sci"`
		Explanation []string  `json:"explanation"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, skillID, body.SkillID)
	assert.Equal(t, 72.5, body.SCI)
	assert.NotEmpty(t, body.Explanation)
}

func TestUserSkillHandler_CooldownIsTooManyRequests(t *testing.T) {
	app := newTestApp(NewUserSkillHandler(&stubUserSkills{err: usecase.ErrAssessmentCooldown}).RegisterRoutes)

	status, _ := doRequest(t, app, fiber.MethodPost,
		"/users/"+uuid.NewString()+"/skills/"+uuid.NewString()+"/assessments", `{"answers":{"0":"a"}}`)

	assert.Equal(t, fiber.StatusTooManyRequests, status)
}

func TestRoleHandler_CareerPathDepth(t *testing.T) {
	uc := &stubRoles{}
	app := newTestApp(NewRoleHandler(uc).RegisterRoutes)

	status, env := doRequest(t, app, fiber.MethodGet, "/roles/"+uuid.NewString()+"/career-path?depth=2", "")

	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, uc.depth)
	assert.Equal(t, 2, *uc.depth)

	var node struct {
		Title    string `json:"title"`
		Children []struct {
			Title    string            `json:"title"`
			Children []json.RawMessage `json:"children"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &node))
	assert.Equal(t, "Engineer", node.Title)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "Lead", node.Children[0].Title)
	assert.NotNil(t, node.Children[0].Children)
}

func TestRoleHandler_CareerPathDefaultsAndBadDepth(t *testing.T) {
	uc := &stubRoles{}
	app := newTestApp(NewRoleHandler(uc).RegisterRoutes)

	status, _ := doRequest(t, app, fiber.MethodGet, "/roles/"+uuid.NewString()+"/career-path", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Nil(t, uc.depth)

	status, _ = doRequest(t, app, fiber.MethodGet, "/roles/"+uuid.NewString()+"/career-path?depth=deep", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestJobHandler_CandidatesAlwaysList(t *testing.T) {
	app := newTestApp(NewJobHandler(&stubJobs{}).RegisterRoutes)

	status, env := doRequest(t, app, fiber.MethodGet, "/jobs/"+uuid.NewString()+"/candidates", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestJobHandler_ApplyToClosedJob(t *testing.T) {
	app := newTestApp(NewJobHandler(&stubJobs{err: usecase.ErrJobClosed}).RegisterRoutes)

	status, env := doRequest(t, app, fiber.MethodPost, "/jobs/"+uuid.NewString()+"/applications",
		`{"candidate_id":"`+uuid.NewString()+`"}`)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "job is closed", env.Message)
}

func TestJobHandler_InternalErrorHidesCause(t *testing.T) {
	app := newTestApp(NewJobHandler(&stubJobs{err: usecase.ErrInternal}).RegisterRoutes)

	status, env := doRequest(t, app, fiber.MethodGet, "/users/"+uuid.NewString()+"/jobs/"+uuid.NewString()+"/match", "")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", env.Message)
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		cache  Pinger
		status int
		want   healthStatus
	}{
		{"all up", stubPinger{}, stubPinger{}, fiber.StatusOK, healthStatus{Database: "up", Cache: "up"}},
		{"cache down", stubPinger{}, stubPinger{err: io.EOF}, fiber.StatusOK, healthStatus{Database: "up", Cache: "down"}},
		{"no cache", stubPinger{}, nil, fiber.StatusOK, healthStatus{Database: "up", Cache: "disabled"}},
		{"db down", stubPinger{err: io.EOF}, stubPinger{}, fiber.StatusServiceUnavailable, healthStatus{Database: "down", Cache: "up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(NewHealthHandler(tt.db, tt.cache).RegisterRoutes)

			status, env := doRequest(t, app, fiber.MethodGet, "/health", "")

			assert.Equal(t, tt.status, status)
			var got healthStatus
			require.NoError(t, json.Unmarshal(env.Data, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}
