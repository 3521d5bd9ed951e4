package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"talentbridge/internal/domain/career"
	"talentbridge/internal/domain/confidence"
	"talentbridge/internal/domain/job"
	"talentbridge/internal/domain/skill"
	"talentbridge/internal/domain/user"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func testEngine() *confidence.Engine {
	e, err := confidence.NewEngine(confidence.DefaultWeights())
	if err != nil {
		panic(err)
	}
	return e
}

type mockUserSkillRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]skill.ProfileEntry
	err     error
	updates []skill.ProfileEntry
}

func newMockUserSkillRepo() *mockUserSkillRepo {
	return &mockUserSkillRepo{entries: map[uuid.UUID][]skill.ProfileEntry{}}
}

func (m *mockUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.ProfileEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]skill.ProfileEntry{}, m.entries[userID]...), nil
}

func (m *mockUserSkillRepo) FindByUserIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]skill.ProfileEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[uuid.UUID][]skill.ProfileEntry{}
	for _, id := range ids {
		if e, ok := m.entries[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

func (m *mockUserSkillRepo) FindByUserAndSkill(_ context.Context, userID, skillID uuid.UUID) (skill.ProfileEntry, error) {
	if m.err != nil {
		return skill.ProfileEntry{}, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries[userID] {
		if e.Skill.ID == skillID {
			return e, nil
		}
	}
	return skill.ProfileEntry{}, repository.ErrUserSkillNotFound
}

func (m *mockUserSkillRepo) Create(_ context.Context, userID uuid.UUID, e skill.ProfileEntry) (skill.ProfileEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Skill = skill.NewRef(e.Skill.ID, "Go")
	m.entries[userID] = append(m.entries[userID], e)
	return e, nil
}

func (m *mockUserSkillRepo) UpdateScores(_ context.Context, userID uuid.UUID, e skill.ProfileEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.entries[userID] {
		if cur.ID == e.ID {
			m.entries[userID][i] = e
			m.updates = append(m.updates, e)
			return nil
		}
	}
	return repository.ErrUserSkillNotFound
}

type mockSkillRepo struct {
	defs map[uuid.UUID]skill.Definition
	err  error
}

func (m mockSkillRepo) ListSkills(context.Context) ([]skill.Definition, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]skill.Definition, 0, len(m.defs))
	for _, d := range m.defs {
		out = append(out, d)
	}
	return out, nil
}

func (m mockSkillRepo) GetSkill(_ context.Context, id uuid.UUID) (skill.Definition, error) {
	if m.err != nil {
		return skill.Definition{}, m.err
	}
	d, ok := m.defs[id]
	if !ok {
		return skill.Definition{}, repository.ErrSkillNotFound
	}
	return d, nil
}

func (m mockSkillRepo) CreateSkill(_ context.Context, def skill.Definition) (skill.Definition, error) {
	if m.err != nil {
		return skill.Definition{}, m.err
	}
	for _, d := range m.defs {
		if strings.EqualFold(d.Name, def.Name) {
			return skill.Definition{}, repository.ErrSkillExists
		}
	}
	return def, nil
}

type mockRoleRepo struct {
	roles []career.Role
	err   error
	calls int
}

func (m *mockRoleRepo) ListRoles(context.Context) ([]career.Role, error) {
	m.calls++
	return m.roles, m.err
}

func (m *mockRoleRepo) GetRole(_ context.Context, id uuid.UUID) (career.Role, error) {
	if m.err != nil {
		return career.Role{}, m.err
	}
	for _, r := range m.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return career.Role{}, repository.ErrRoleNotFound
}

func (m *mockRoleRepo) CreateRole(_ context.Context, r career.Role) (career.Role, error) {
	if m.err != nil {
		return career.Role{}, m.err
	}
	m.roles = append(m.roles, r)
	return r, nil
}

// mockJobRepo holds mu across SaveApplication the way the posting row lock
// serializes concurrent applies.
type mockJobRepo struct {
	mu    sync.Mutex
	jobs  map[uuid.UUID]job.Job
	saved []job.Application
	err   error
}

func (m *mockJobRepo) GetJob(_ context.Context, id uuid.UUID) (job.Job, error) {
	if m.err != nil {
		return job.Job{}, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrJobNotFound
	}
	j.Applications = append([]job.Application{}, j.Applications...)
	return j, nil
}

func (m *mockJobRepo) CreateJob(_ context.Context, j job.Job) (job.Job, error) {
	if m.err != nil {
		return job.Job{}, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = j
	return j, nil
}

func (m *mockJobRepo) SaveApplication(ctx context.Context, app job.Application, rerank repository.RerankFunc) (job.Application, error) {
	if m.err != nil {
		return job.Application{}, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[app.JobID]
	if !ok {
		return job.Application{}, repository.ErrJobNotFound
	}
	if !j.IsOpen() {
		return job.Application{}, repository.ErrJobClosed
	}
	if j.HasApplicant(app.CandidateID) {
		return job.Application{}, repository.ErrApplicationExists
	}
	ranked, err := rerank(ctx, append(append([]job.Application{}, j.Applications...), app))
	if err != nil {
		return job.Application{}, err
	}
	j.Applications = append([]job.Application{}, ranked...)
	m.jobs[app.JobID] = j
	m.saved = ranked
	for _, it := range ranked {
		if it.ID == app.ID {
			return it, nil
		}
	}
	return job.Application{}, repository.ErrMissingReference
}

// recordingNotifier keeps every ApplicationsRanked call.
type recordingNotifier struct {
	mu     sync.Mutex
	events map[uuid.UUID][][]job.Application
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{events: map[uuid.UUID][][]job.Application{}}
}

func (n *recordingNotifier) ApplicationsRanked(jobID uuid.UUID, apps []job.Application) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events[jobID] = append(n.events[jobID], apps)
}

type mockUserRepo struct {
	users map[uuid.UUID]user.User
	err   error
}

func (m mockUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	for _, cur := range m.users {
		if u.Email != "" && cur.Email == u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	u.CreatedAt = fixedNow
	return u, nil
}

func (m mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m mockUserRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := map[uuid.UUID]user.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// memCache is an in-memory Cache; available=false mimics an unreachable redis.
type memCache struct {
	mu        sync.Mutex
	available bool
	data      map[string][]byte
	gets      int
	sets      int
}

func newMemCache() *memCache {
	return &memCache{available: true, data: map[string][]byte{}}
}

func (c *memCache) Available() bool { return c.available }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.data[key]
	if !ok || !c.available {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if !c.available {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memCache) DeleteIfValue(_ context.Context, key string, value string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.data[key]; !ok || string(cur) != value {
		return false, nil
	}
	delete(c.data, key)
	return true, nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	if !c.available {
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}
