package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"talentbridge/internal/domain/job"
	"talentbridge/internal/domain/matching"
	"talentbridge/internal/domain/ranking"
	"talentbridge/internal/domain/skill"
	"talentbridge/internal/domain/user"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type CreateJobInput struct {
	OwnerID      uuid.UUID
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements []RequirementInput
}

type JobMatchReport struct {
	Job   job.Job
	Match matching.Result
}

type ApplyResult struct {
	Application job.Application
	Match       matching.Result
	Applicants  int
}

type JobUsecase interface {
	CreateJob(ctx context.Context, in CreateJobInput) (job.Job, error)
	MatchJob(ctx context.Context, userID, jobID uuid.UUID) (JobMatchReport, error)
	Apply(ctx context.Context, jobID, candidateID uuid.UUID) (ApplyResult, error)
	RankCandidates(ctx context.Context, jobID uuid.UUID) ([]ranking.Ranked, error)
}

type Jobs struct {
	jobs     repository.JobRepository
	profiles repository.UserSkillRepository
	users    user.Repository
	ranker   *ranking.Ranker
	notifier ApplicationNotifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewJobUsecase(
	jobs repository.JobRepository,
	profiles repository.UserSkillRepository,
	users user.Repository,
	ranker *ranking.Ranker,
	logger *zap.Logger,
) *Jobs {
	return &Jobs{
		jobs:     jobs,
		profiles: profiles,
		users:    users,
		ranker:   ranker,
		notifier: nopNotifier{},
		logger:   orNop(logger),
		now:      time.Now,
	}
}

// SetNotifier installs the push channel for ranking changes; nil disables it.
func (u *Jobs) SetNotifier(n ApplicationNotifier) {
	if n == nil {
		n = nopNotifier{}
	}
	u.notifier = n
}

func (u *Jobs) CreateJob(ctx context.Context, in CreateJobInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.OwnerID == uuid.Nil {
		return job.Job{}, ErrInvalidInput
	}
	reqs, err := toRequirements(in.Requirements)
	if err != nil {
		return job.Job{}, err
	}

	created, err := u.jobs.CreateJob(ctx, job.Job{
		ID:           uuid.New(),
		OwnerID:      in.OwnerID,
		Title:        title,
		Company:      strings.TrimSpace(in.Company),
		Location:     strings.TrimSpace(in.Location),
		Description:  strings.TrimSpace(in.Description),
		Requirements: reqs,
		Status:       job.StatusOpen,
	})
	if err != nil {
		return job.Job{}, internalErr(u.logger, "create job failed", err)
	}
	return created, nil
}

func (u *Jobs) MatchJob(ctx context.Context, userID, jobID uuid.UUID) (JobMatchReport, error) {
	if userID == uuid.Nil || jobID == uuid.Nil {
		return JobMatchReport{}, ErrInvalidInput
	}

	var (
		j       job.Job
		profile []skill.ProfileEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		j, err = u.jobs.GetJob(gctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = u.profiles.FindByUserID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobMatchReport{}, ErrJobNotFound
		}
		return JobMatchReport{}, internalErr(u.logger, "load match inputs failed", err)
	}

	return JobMatchReport{Job: j, Match: matching.Match(profile, j.Requirements)}, nil
}

// Apply records a candidate's application, then re-ranks every applicant of
// the job and persists the new positions with it. The early checks only
// fail fast; the repository repeats them under the posting's row lock.
func (u *Jobs) Apply(ctx context.Context, jobID, candidateID uuid.UUID) (ApplyResult, error) {
	if jobID == uuid.Nil || candidateID == uuid.Nil {
		return ApplyResult{}, ErrInvalidInput
	}

	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return ApplyResult{}, err
	}
	if !j.IsOpen() {
		return ApplyResult{}, ErrJobClosed
	}
	if j.HasApplicant(candidateID) {
		return ApplyResult{}, ErrAlreadyApplied
	}
	if _, err := u.users.GetByID(ctx, candidateID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ApplyResult{}, ErrUserNotFound
		}
		return ApplyResult{}, internalErr(u.logger, "lookup candidate failed", err)
	}

	app := job.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidateID,
		AppliedAt:   u.now().UTC(),
	}

	// Loaded before the row lock so the locked section only fetches
	// applicants that arrived concurrently.
	pool, err := u.loadCandidates(ctx, append(j.CandidateIDs(), candidateID))
	if err != nil {
		return ApplyResult{}, err
	}

	var (
		byCandidate map[uuid.UUID]ranking.Ranked
		applicants  []job.Application
	)
	saved, err := u.jobs.SaveApplication(ctx, app, func(ctx context.Context, apps []job.Application) ([]job.Application, error) {
		if missing := pool.missing(apps); len(missing) > 0 {
			extra, err := u.loadCandidates(ctx, missing)
			if err != nil {
				return nil, err
			}
			pool.merge(extra)
		}

		ranked := u.ranker.Rank(pool.candidates(apps), j.Requirements)
		byCandidate = make(map[uuid.UUID]ranking.Ranked, len(ranked))
		for _, r := range ranked {
			byCandidate[r.CandidateID] = r
		}
		for i := range apps {
			r := byCandidate[apps[i].CandidateID]
			apps[i].Ranking = r.Ranking
			apps[i].SkillMatchPercentage = r.Match.MatchPercentage
		}
		applicants = apps
		return apps, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInternal):
			return ApplyResult{}, err
		case errors.Is(err, repository.ErrJobNotFound):
			return ApplyResult{}, ErrJobNotFound
		case errors.Is(err, repository.ErrJobClosed):
			return ApplyResult{}, ErrJobClosed
		case errors.Is(err, repository.ErrApplicationExists):
			return ApplyResult{}, ErrAlreadyApplied
		case errors.Is(err, repository.ErrMissingReference):
			return ApplyResult{}, ErrUserNotFound
		}
		return ApplyResult{}, internalErr(u.logger, "save application failed", err)
	}

	u.logger.Info("application recorded",
		zap.String("job_id", jobID.String()),
		zap.String("candidate_id", candidateID.String()),
		zap.Int("match_percentage", saved.SkillMatchPercentage),
		zap.Int("ranking", saved.Ranking),
	)

	u.notifier.ApplicationsRanked(jobID, applicants)

	return ApplyResult{
		Application: saved,
		Match:       byCandidate[candidateID].Match,
		Applicants:  len(applicants),
	}, nil
}

func (u *Jobs) RankCandidates(ctx context.Context, jobID uuid.UUID) ([]ranking.Ranked, error) {
	if jobID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	j, err := u.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return u.rank(ctx, j.Applications, j.Requirements)
}

func (u *Jobs) loadJob(ctx context.Context, jobID uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, internalErr(u.logger, "get job failed", err, zap.String("job_id", jobID.String()))
	}
	return j, nil
}

// rank scores applicants in application order, so full ties keep the
// earlier applicant ahead.
func (u *Jobs) rank(ctx context.Context, apps []job.Application, reqs []skill.Requirement) ([]ranking.Ranked, error) {
	ids := make([]uuid.UUID, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.CandidateID)
	}
	pool, err := u.loadCandidates(ctx, ids)
	if err != nil {
		return nil, err
	}
	return u.ranker.Rank(pool.candidates(apps), reqs), nil
}

type candidatePool struct {
	users    map[uuid.UUID]user.User
	profiles map[uuid.UUID][]skill.ProfileEntry
}

func (u *Jobs) loadCandidates(ctx context.Context, ids []uuid.UUID) (candidatePool, error) {
	var pool candidatePool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pool.users, err = u.users.GetByIDs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		pool.profiles, err = u.profiles.FindByUserIDs(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return candidatePool{}, internalErr(u.logger, "load candidates failed", err)
	}
	return pool, nil
}

// missing lists applicants whose user record is not loaded yet.
func (p candidatePool) missing(apps []job.Application) []uuid.UUID {
	var out []uuid.UUID
	for _, a := range apps {
		if _, ok := p.users[a.CandidateID]; !ok {
			out = append(out, a.CandidateID)
		}
	}
	return out
}

func (p *candidatePool) merge(other candidatePool) {
	if p.users == nil {
		p.users = map[uuid.UUID]user.User{}
	}
	if p.profiles == nil {
		p.profiles = map[uuid.UUID][]skill.ProfileEntry{}
	}
	for id, usr := range other.users {
		p.users[id] = usr
	}
	for id, entries := range other.profiles {
		p.profiles[id] = entries
	}
}

func (p candidatePool) candidates(apps []job.Application) []ranking.Candidate {
	out := make([]ranking.Candidate, 0, len(apps))
	for _, a := range apps {
		usr := p.users[a.CandidateID]
		out = append(out, ranking.Candidate{
			ID:              a.CandidateID,
			Name:            usr.Name,
			ExperienceYears: usr.ExperienceYears,
			Skills:          p.profiles[a.CandidateID],
		})
	}
	return out
}
