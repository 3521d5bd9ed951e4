package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"talentbridge/internal/domain/assessment"
	"talentbridge/internal/domain/confidence"
	"talentbridge/internal/domain/skill"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const assessmentLockTTL = 30 * time.Second

type AddUserSkillInput struct {
	SkillID         uuid.UUID
	SelfRating      int
	LastUsedDate    *time.Time
	Tag             string
	AssessmentScore *float64
	ScenarioScore   *float64
}

// SubmitAssessmentInput either carries answers to grade against the skill's
// items, or externally produced scores.
type SubmitAssessmentInput struct {
	Answers         map[int]string
	AssessmentScore *float64
	ScenarioScore   *float64
}

// ScoredEntry is a profile entry with the itemized computation behind its SCI.
type ScoredEntry struct {
	Entry       skill.ProfileEntry
	Computation confidence.Result
	Graded      *assessment.Scores
}

type UserSkillUsecase interface {
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]ScoredEntry, error)
	AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (ScoredEntry, error)
	TouchUserSkill(ctx context.Context, userID, skillID uuid.UUID, lastUsed time.Time) (ScoredEntry, error)
	SubmitAssessment(ctx context.Context, userID, skillID uuid.UUID, in SubmitAssessmentInput) (ScoredEntry, error)
}

type UserSkill struct {
	repo     repository.UserSkillRepository
	skills   repository.SkillRepository
	engine   *confidence.Engine
	cache    Cache
	cooldown time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewUserSkillUsecase(
	repo repository.UserSkillRepository,
	skills repository.SkillRepository,
	engine *confidence.Engine,
	cache Cache,
	cooldown time.Duration,
	logger *zap.Logger,
) *UserSkill {
	return &UserSkill{
		repo:     repo,
		skills:   skills,
		engine:   engine,
		cache:    cache,
		cooldown: cooldown,
		logger:   orNop(logger),
		now:      time.Now,
	}
}

func (u *UserSkill) score(e skill.ProfileEntry, now time.Time) ScoredEntry {
	res := u.engine.Compute(confidence.Inputs{
		AssessmentScore: e.AssessmentScore,
		LastUsedDate:    e.LastUsedDate,
		ScenarioScore:   e.ScenarioScore,
	}, now)
	return ScoredEntry{Entry: e, Computation: res}
}

// ListUserSkills returns the stored profile with each computation replayed
// against the current time. Stored SCI values are not rewritten here.
func (u *UserSkill) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]ScoredEntry, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	entries, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, internalErr(u.logger, "list user skills failed", err, zap.String("user_id", userID.String()))
	}

	now := u.now()
	out := make([]ScoredEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, u.score(e, now))
	}
	return out, nil
}

func (u *UserSkill) AddUserSkill(ctx context.Context, userID uuid.UUID, in AddUserSkillInput) (ScoredEntry, error) {
	if userID == uuid.Nil || in.SkillID == uuid.Nil {
		return ScoredEntry{}, ErrInvalidInput
	}
	if in.SelfRating < 1 || in.SelfRating > 5 {
		return ScoredEntry{}, ErrInvalidInput
	}
	if in.LastUsedDate == nil || in.LastUsedDate.IsZero() {
		return ScoredEntry{}, ErrInvalidInput
	}
	if !validScore(in.AssessmentScore) || !validScore(in.ScenarioScore) {
		return ScoredEntry{}, ErrInvalidInput
	}

	_, err := u.repo.FindByUserAndSkill(ctx, userID, in.SkillID)
	if err == nil {
		return ScoredEntry{}, ErrUserSkillExists
	}
	if !errors.Is(err, repository.ErrUserSkillNotFound) {
		return ScoredEntry{}, internalErr(u.logger, "lookup user skill failed", err)
	}

	now := u.now()
	entry := skill.ProfileEntry{
		ID:           uuid.New(),
		Skill:        skill.RefID(in.SkillID),
		SelfRating:   in.SelfRating,
		LastUsedDate: in.LastUsedDate,
		Tag:          skill.ParseTag(in.Tag),
	}
	entry = u.engine.Update(entry, confidence.UpdateInput{
		AssessmentScore: in.AssessmentScore,
		ScenarioScore:   in.ScenarioScore,
	}, now)

	created, err := u.repo.Create(ctx, userID, entry)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserSkillExists):
			return ScoredEntry{}, ErrUserSkillExists
		case errors.Is(err, repository.ErrMissingReference):
			return ScoredEntry{}, ErrSkillNotFound
		}
		return ScoredEntry{}, internalErr(u.logger, "create user skill failed", err)
	}

	u.logger.Info("skill added to profile",
		zap.String("user_id", userID.String()),
		zap.String("skill_id", in.SkillID.String()),
		zap.Float64("sci", created.SCI),
	)
	return u.score(created, now), nil
}

func (u *UserSkill) TouchUserSkill(ctx context.Context, userID, skillID uuid.UUID, lastUsed time.Time) (ScoredEntry, error) {
	if userID == uuid.Nil || skillID == uuid.Nil || lastUsed.IsZero() {
		return ScoredEntry{}, ErrInvalidInput
	}
	now := u.now()
	if lastUsed.After(now) {
		return ScoredEntry{}, ErrInvalidInput
	}

	entry, err := u.find(ctx, userID, skillID)
	if err != nil {
		return ScoredEntry{}, err
	}

	updated := u.engine.Touch(entry, lastUsed, now)
	if err := u.save(ctx, userID, updated); err != nil {
		return ScoredEntry{}, err
	}
	return u.score(updated, now), nil
}

// SubmitAssessment records a new assessment for one profile entry. A retake
// within the cooldown is refused and concurrent submissions for the same
// entry are serialized through the cache when it is reachable.
func (u *UserSkill) SubmitAssessment(ctx context.Context, userID, skillID uuid.UUID, in SubmitAssessmentInput) (ScoredEntry, error) {
	if userID == uuid.Nil || skillID == uuid.Nil {
		return ScoredEntry{}, ErrInvalidInput
	}
	if len(in.Answers) == 0 && in.AssessmentScore == nil && in.ScenarioScore == nil {
		return ScoredEntry{}, ErrInvalidInput
	}
	if !validScore(in.AssessmentScore) || !validScore(in.ScenarioScore) {
		return ScoredEntry{}, ErrInvalidInput
	}

	if u.cache != nil && u.cache.Available() {
		key := AssessmentLockKey(userID, skillID)
		token := uuid.NewString()
		ok, err := u.cache.SetIfNotExists(ctx, key, token, assessmentLockTTL)
		if err == nil && !ok {
			return ScoredEntry{}, ErrAssessmentInProgress
		}
		if ok {
			// Only the holder's token may release the lock.
			defer func() { _, _ = u.cache.DeleteIfValue(context.Background(), key, token) }()
		}
	}

	entry, err := u.find(ctx, userID, skillID)
	if err != nil {
		return ScoredEntry{}, err
	}

	now := u.now()
	if entry.LastAssessed != nil && u.cooldown > 0 && now.Sub(*entry.LastAssessed) < u.cooldown {
		return ScoredEntry{}, ErrAssessmentCooldown
	}

	update := confidence.UpdateInput{
		AssessmentScore: in.AssessmentScore,
		ScenarioScore:   in.ScenarioScore,
	}

	var graded *assessment.Scores
	if len(in.Answers) > 0 {
		def, err := u.skills.GetSkill(ctx, skillID)
		if err != nil {
			if errors.Is(err, repository.ErrSkillNotFound) {
				return ScoredEntry{}, ErrSkillNotFound
			}
			return ScoredEntry{}, internalErr(u.logger, "load assessment items failed", err)
		}
		if len(def.Items) == 0 {
			return ScoredEntry{}, ErrNoAssessmentItems
		}
		s := assessment.Grade(def.Items, in.Answers)
		graded = &s
		update.AssessmentScore = &s.Assessment
		if s.HasScenario {
			update.ScenarioScore = &s.Scenario
		}
	}

	updated := u.engine.Update(entry, update, now)
	if err := u.save(ctx, userID, updated); err != nil {
		return ScoredEntry{}, err
	}

	u.logger.Info("assessment recorded",
		zap.String("user_id", userID.String()),
		zap.String("skill_id", skillID.String()),
		zap.Float64("previous_sci", entry.SCI),
		zap.Float64("sci", updated.SCI),
	)

	out := u.score(updated, now)
	out.Graded = graded
	return out, nil
}

func (u *UserSkill) find(ctx context.Context, userID, skillID uuid.UUID) (skill.ProfileEntry, error) {
	entry, err := u.repo.FindByUserAndSkill(ctx, userID, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return skill.ProfileEntry{}, ErrUserSkillNotFound
		}
		return skill.ProfileEntry{}, internalErr(u.logger, "lookup user skill failed", err)
	}
	return entry, nil
}

func (u *UserSkill) save(ctx context.Context, userID uuid.UUID, e skill.ProfileEntry) error {
	if err := u.repo.UpdateScores(ctx, userID, e); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrUserSkillNotFound
		}
		return internalErr(u.logger, "update user skill failed", err)
	}
	return nil
}

func validScore(v *float64) bool {
	if v == nil {
		return true
	}
	return !math.IsNaN(*v) && *v >= 0 && *v <= 100
}
