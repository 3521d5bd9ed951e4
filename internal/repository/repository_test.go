package repository

import (
	"context"
	"testing"
	"time"

	"talentbridge/internal/domain/career"
	"talentbridge/internal/domain/job"
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleRepository_ListRolesAssemblesGraph(t *testing.T) {
	junior, senior := uuid.New(), uuid.New()
	goID, orphan := uuid.New(), uuid.New()

	db := newFakeDB().
		on("FROM roles",
			[]any{junior, "Junior Engineer", "", "Engineering", "Tech", 1000},
			[]any{senior, "Senior Engineer", "", "Engineering", "Tech", 2000},
		).
		on("FROM role_requirements",
			[]any{junior, goID, "Go", 50.0, 0},
			[]any{junior, orphan, "", 40.0, 0},
		).
		on("FROM role_edges", []any{junior, senior})

	roles, err := NewPostgresRoleRepository(db).ListRoles(context.Background())
	require.NoError(t, err)

	require.Len(t, roles, 2)
	require.Len(t, roles[0].Requirements, 2)
	assert.Equal(t, "Go", roles[0].Requirements[0].Skill.DisplayName())
	assert.Equal(t, skill.UnknownName, roles[0].Requirements[1].Skill.DisplayName())
	assert.Equal(t, []uuid.UUID{senior}, roles[0].NextRoles)

	assert.NotNil(t, roles[1].Requirements)
	assert.Empty(t, roles[1].NextRoles)
}

func TestRoleRepository_GetRoleNotFound(t *testing.T) {
	_, err := NewPostgresRoleRepository(newFakeDB()).GetRole(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestRoleRepository_CreateRoleWritesEdgesInOrder(t *testing.T) {
	db := newFakeDB()
	next1, next2 := uuid.New(), uuid.New()

	role, err := NewPostgresRoleRepository(db).CreateRole(context.Background(), career.Role{
		Title:        "  Staff Engineer ",
		Requirements: []skill.Requirement{{Skill: skill.RefID(uuid.New()), MinimumSCI: 70}},
		NextRoles:    []uuid.UUID{next1, next2},
	})
	require.NoError(t, err)

	assert.Equal(t, "Staff Engineer", role.Title)
	assert.NotEqual(t, uuid.Nil, role.ID)
	assert.True(t, db.committed)

	edges := db.execsMatching("INSERT INTO role_edges")
	require.Len(t, edges, 2)
	assert.Equal(t, next1, edges[0].args[1])
	assert.Equal(t, 1, edges[1].args[2])
}

func TestJobRepository_GetJob(t *testing.T) {
	jobID, owner, goID := uuid.New(), uuid.New(), uuid.New()
	applied := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	db := newFakeDB().
		on("FROM jobs", []any{jobID, owner, "Backend", "Acme", "Remote", "", "closed", applied}).
		on("FROM job_skills", []any{jobID, goID, "Go", 60.0, 4}).
		on("FROM job_applications", []any{uuid.New(), jobID, uuid.New(), applied, 75, 1})

	j, err := NewPostgresJobRepository(db).GetJob(context.Background(), jobID)
	require.NoError(t, err)

	assert.False(t, j.IsOpen())
	require.Len(t, j.Requirements, 1)
	assert.Equal(t, 4, j.Requirements[0].Importance)
	require.Len(t, j.Applications, 1)
	assert.Equal(t, 75, j.Applications[0].SkillMatchPercentage)
}

func TestJobRepository_GetJobNotFound(t *testing.T) {
	_, err := NewPostgresJobRepository(newFakeDB()).GetJob(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

// rankByMatch orders apps by descending match percentage.
func rankByMatch(match map[uuid.UUID]int) RerankFunc {
	return func(_ context.Context, apps []job.Application) ([]job.Application, error) {
		for i := range apps {
			apps[i].SkillMatchPercentage = match[apps[i].CandidateID]
			apps[i].Ranking = 1
			for _, other := range apps {
				if match[other.CandidateID] > apps[i].SkillMatchPercentage {
					apps[i].Ranking++
				}
			}
		}
		return apps, nil
	}
}

func TestJobRepository_SaveApplicationRerankRereadsUnderLock(t *testing.T) {
	jobID, existingID, existingCandidate := uuid.New(), uuid.New(), uuid.New()
	applied := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	db := newFakeDB().
		on("FOR UPDATE", []any{"open"}).
		on("FROM job_applications", []any{existingID, jobID, existingCandidate, applied, 90, 1})

	app := job.Application{ID: uuid.New(), JobID: jobID, CandidateID: uuid.New(), AppliedAt: applied.Add(time.Hour)}
	var seen []job.Application
	rerank := rankByMatch(map[uuid.UUID]int{existingCandidate: 40, app.CandidateID: 90})

	saved, err := NewPostgresJobRepository(db).SaveApplication(context.Background(), app,
		func(ctx context.Context, apps []job.Application) ([]job.Application, error) {
			seen = append([]job.Application{}, apps...)
			return rerank(ctx, apps)
		})
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, existingID, seen[0].ID)
	assert.Equal(t, app.ID, seen[1].ID)
	assert.Contains(t, db.queriesMatching("FROM jobs WHERE id = $1 FOR UPDATE"), "SELECT status FROM jobs WHERE id = $1 FOR UPDATE")

	assert.Equal(t, app.ID, saved.ID)
	assert.Equal(t, 1, saved.Ranking)
	assert.Equal(t, 90, saved.SkillMatchPercentage)
	assert.True(t, db.committed)

	inserts := db.execsMatching("INSERT INTO job_applications")
	require.Len(t, inserts, 1)
	assert.Equal(t, 1, inserts[0].args[5])
	updates := db.execsMatching("UPDATE job_applications")
	require.Len(t, updates, 1)
	assert.Equal(t, 2, updates[0].args[0])
	assert.Equal(t, existingID, updates[0].args[2])
}

func TestJobRepository_SaveApplicationRejectsUnderLock(t *testing.T) {
	ctx := context.Background()
	jobID, candidate := uuid.New(), uuid.New()
	app := job.Application{ID: uuid.New(), JobID: jobID, CandidateID: candidate}
	calls := 0
	rerank := func(_ context.Context, apps []job.Application) ([]job.Application, error) {
		calls++
		return apps, nil
	}

	_, err := NewPostgresJobRepository(newFakeDB()).SaveApplication(ctx, app, rerank)
	assert.ErrorIs(t, err, ErrJobNotFound)

	closed := newFakeDB().on("FOR UPDATE", []any{"closed"})
	_, err = NewPostgresJobRepository(closed).SaveApplication(ctx, app, rerank)
	assert.ErrorIs(t, err, ErrJobClosed)
	assert.False(t, closed.committed)

	dup := newFakeDB().
		on("FOR UPDATE", []any{"open"}).
		on("FROM job_applications", []any{uuid.New(), jobID, candidate, time.Now(), 50, 1})
	_, err = NewPostgresJobRepository(dup).SaveApplication(ctx, app, rerank)
	assert.ErrorIs(t, err, ErrApplicationExists)
	assert.Empty(t, dup.execsMatching("INSERT INTO job_applications"))

	assert.Zero(t, calls)
}

func TestJobRepository_SaveApplicationDuplicate(t *testing.T) {
	db := newFakeDB().
		on("FOR UPDATE", []any{"open"}).
		fail("INSERT INTO job_applications", &pgconn.PgError{Code: "23505"})

	app := job.Application{ID: uuid.New(), JobID: uuid.New(), CandidateID: uuid.New()}
	_, err := NewPostgresJobRepository(db).SaveApplication(context.Background(), app, rankByMatch(nil))
	assert.ErrorIs(t, err, ErrApplicationExists)
	assert.False(t, db.committed)
	assert.True(t, db.rolledBack)
}

func TestUserSkillRepository_FindByUserIDs(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	goID := uuid.New()
	used := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	db := newFakeDB().on("FROM user_skills",
		[]any{alice, uuid.New(), goID, "Go", 4, &used, 80.0, 100.0, 70.0, 84.5, nil, "tools"},
		[]any{bob, uuid.New(), goID, "", 2, nil, 0.0, 0.0, 0.0, 0.0, nil, "weird"},
	)
	repo := NewPostgresUserSkillRepository(db)

	byUser, err := repo.FindByUserIDs(context.Background(), []uuid.UUID{alice, bob})
	require.NoError(t, err)

	require.Len(t, byUser[alice], 1)
	assert.Equal(t, 84.5, byUser[alice][0].SCI)
	assert.Equal(t, skill.TagTools, byUser[alice][0].Tag)
	assert.Equal(t, used, *byUser[alice][0].LastUsedDate)
	assert.Nil(t, byUser[alice][0].LastAssessed)

	require.Len(t, byUser[bob], 1)
	assert.False(t, byUser[bob][0].Skill.Joined())
	assert.Equal(t, skill.TagCore, byUser[bob][0].Tag)
}

func TestUserSkillRepository_FindByUserIDEmpty(t *testing.T) {
	entries, err := NewPostgresUserSkillRepository(newFakeDB()).FindByUserID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestUserSkillRepository_CreateMapsConstraintErrors(t *testing.T) {
	ctx := context.Background()
	entry := skill.ProfileEntry{Skill: skill.RefID(uuid.New()), SelfRating: 3}

	db := newFakeDB().fail("INSERT INTO user_skills", &pgconn.PgError{Code: "23505"})
	_, err := NewPostgresUserSkillRepository(db).Create(ctx, uuid.New(), entry)
	assert.ErrorIs(t, err, ErrUserSkillExists)

	db = newFakeDB().fail("INSERT INTO user_skills", &pgconn.PgError{Code: "23503"})
	_, err = NewPostgresUserSkillRepository(db).Create(ctx, uuid.New(), entry)
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestSkillRepository_CreateSkillWritesItems(t *testing.T) {
	created := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	db := newFakeDB().on("INSERT INTO skills", []any{created})

	def, err := NewPostgresSkillRepository(db).CreateSkill(context.Background(), skill.Definition{
		Name:     " Go ",
		Category: skill.CategoryProgramming,
		Items: []skill.AssessmentItem{
			{Question: "q1", Type: skill.ItemTrueFalse, CorrectAnswer: "true", Points: 1},
			{Question: "q2", Type: skill.ItemScenario, Options: []string{"a", "b"}, CorrectAnswer: "a", Points: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Go", def.Name)
	assert.Equal(t, created, def.CreatedAt)
	items := db.execsMatching("INSERT INTO skill_assessment_items")
	require.Len(t, items, 2)
	assert.Equal(t, []string{}, items[0].args[5])
	assert.Equal(t, 1, items[1].args[2])
}

func TestSkillRepository_GetSkillNotFound(t *testing.T) {
	_, err := NewPostgresSkillRepository(newFakeDB()).GetSkill(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSkillNotFound)
}
