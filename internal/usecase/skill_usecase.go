package usecase

import (
	"context"
	"errors"
	"strings"

	"talentbridge/internal/domain/skill"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateSkillInput struct {
	Name        string
	Category    string
	Description string
	Items       []skill.AssessmentItem
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Definition, error)
	GetSkill(ctx context.Context, id uuid.UUID) (skill.Definition, error)
	CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Definition, error)
}

type Skills struct {
	repo   repository.SkillRepository
	logger *zap.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, logger *zap.Logger) *Skills {
	return &Skills{repo: repo, logger: orNop(logger)}
}

func (u *Skills) ListSkills(ctx context.Context) ([]skill.Definition, error) {
	defs, err := u.repo.ListSkills(ctx)
	if err != nil {
		return nil, internalErr(u.logger, "list skills failed", err)
	}
	return defs, nil
}

func (u *Skills) GetSkill(ctx context.Context, id uuid.UUID) (skill.Definition, error) {
	if id == uuid.Nil {
		return skill.Definition{}, ErrInvalidInput
	}
	def, err := u.repo.GetSkill(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Definition{}, ErrSkillNotFound
		}
		return skill.Definition{}, internalErr(u.logger, "get skill failed", err, zap.String("skill_id", id.String()))
	}
	return def, nil
}

func (u *Skills) CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Definition, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return skill.Definition{}, ErrInvalidInput
	}

	items := make([]skill.AssessmentItem, 0, len(in.Items))
	for _, it := range in.Items {
		it.Question = strings.TrimSpace(it.Question)
		it.CorrectAnswer = strings.TrimSpace(it.CorrectAnswer)
		if it.Question == "" || it.CorrectAnswer == "" {
			return skill.Definition{}, ErrInvalidInput
		}
		switch it.Type {
		case skill.ItemMultipleChoice, skill.ItemTrueFalse, skill.ItemScenario:
		case "":
			it.Type = skill.ItemMultipleChoice
		default:
			return skill.Definition{}, ErrInvalidInput
		}
		if it.Points < 0 {
			return skill.Definition{}, ErrInvalidInput
		}
		if it.Difficulty == "" {
			it.Difficulty = "medium"
		}
		items = append(items, it)
	}

	def, err := u.repo.CreateSkill(ctx, skill.Definition{
		ID:          uuid.New(),
		Name:        name,
		Category:    skill.ParseCategory(in.Category),
		Description: strings.TrimSpace(in.Description),
		Items:       items,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSkillExists) {
			return skill.Definition{}, ErrSkillExists
		}
		return skill.Definition{}, internalErr(u.logger, "create skill failed", err)
	}
	return def, nil
}
