package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"talentbridge/internal/domain/career"
	"talentbridge/internal/domain/gap"
	"talentbridge/internal/domain/skill"
	"talentbridge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxCareerDepth = 10

type RequirementInput struct {
	SkillID    uuid.UUID
	MinimumSCI float64
	Importance int
}

type CreateRoleInput struct {
	Title         string
	Description   string
	Category      string
	Industry      string
	AverageSalary int
	Requirements  []RequirementInput
	NextRoles     []uuid.UUID
}

type RoleGapReport struct {
	Role            career.Role
	Analysis        gap.Result
	Recommendations []gap.Recommendation
}

type RoleUsecase interface {
	CreateRole(ctx context.Context, in CreateRoleInput) (career.Role, error)
	AnalyzeRoleGap(ctx context.Context, userID, roleID uuid.UUID) (RoleGapReport, error)
	RecommendRoles(ctx context.Context, userID uuid.UUID) (career.Recommendations, error)
	CareerPath(ctx context.Context, roleID uuid.UUID, depth *int) (*career.PathNode, error)
}

type Roles struct {
	roles        repository.RoleRepository
	profiles     repository.UserSkillRepository
	cache        Cache
	defaultDepth int
	cacheTTL     time.Duration
	logger       *zap.Logger
}

func NewRoleUsecase(
	roles repository.RoleRepository,
	profiles repository.UserSkillRepository,
	cache Cache,
	defaultDepth int,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Roles {
	return &Roles{
		roles:        roles,
		profiles:     profiles,
		cache:        cache,
		defaultDepth: defaultDepth,
		cacheTTL:     cacheTTL,
		logger:       orNop(logger),
	}
}

func (u *Roles) CreateRole(ctx context.Context, in CreateRoleInput) (career.Role, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.AverageSalary < 0 {
		return career.Role{}, ErrInvalidInput
	}
	reqs, err := toRequirements(in.Requirements)
	if err != nil {
		return career.Role{}, err
	}

	next := make([]uuid.UUID, 0, len(in.NextRoles))
	for _, id := range in.NextRoles {
		if id == uuid.Nil {
			return career.Role{}, ErrInvalidInput
		}
		next = append(next, id)
	}

	role, err := u.roles.CreateRole(ctx, career.Role{
		ID:            uuid.New(),
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		Category:      strings.TrimSpace(in.Category),
		Industry:      strings.TrimSpace(in.Industry),
		AverageSalary: in.AverageSalary,
		Requirements:  reqs,
		NextRoles:     next,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRoleExists) {
			return career.Role{}, ErrRoleExists
		}
		return career.Role{}, internalErr(u.logger, "create role failed", err)
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, careerPathPattern); err != nil {
			u.logger.Warn("career path cache invalidation failed", zap.Error(err))
		}
	}
	return role, nil
}

func (u *Roles) AnalyzeRoleGap(ctx context.Context, userID, roleID uuid.UUID) (RoleGapReport, error) {
	if userID == uuid.Nil || roleID == uuid.Nil {
		return RoleGapReport{}, ErrInvalidInput
	}

	var (
		role    career.Role
		profile []skill.ProfileEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		role, err = u.roles.GetRole(gctx, roleID)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = u.profiles.FindByUserID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return RoleGapReport{}, ErrRoleNotFound
		}
		return RoleGapReport{}, internalErr(u.logger, "load gap inputs failed", err)
	}

	res := gap.Analyze(profile, role.Requirements)
	return RoleGapReport{
		Role:            role,
		Analysis:        res,
		Recommendations: gap.Recommend(res),
	}, nil
}

func (u *Roles) RecommendRoles(ctx context.Context, userID uuid.UUID) (career.Recommendations, error) {
	if userID == uuid.Nil {
		return career.Recommendations{}, ErrInvalidInput
	}

	var (
		roles   []career.Role
		profile []skill.ProfileEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roles, err = u.roles.ListRoles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = u.profiles.FindByUserID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return career.Recommendations{}, internalErr(u.logger, "load recommendation inputs failed", err)
	}

	return career.Recommend(profile, roles), nil
}

// CareerPath builds the progression tree from roleID. A nil depth uses the
// configured default; negative depths are treated as zero.
func (u *Roles) CareerPath(ctx context.Context, roleID uuid.UUID, depth *int) (*career.PathNode, error) {
	if roleID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	d := u.defaultDepth
	if depth != nil {
		d = *depth
	}
	if d < 0 {
		d = 0
	}
	if d > maxCareerDepth {
		return nil, ErrInvalidInput
	}

	key := CareerPathCacheKey(roleID, d)
	if u.cache != nil {
		var cached career.PathNode
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			u.logger.Debug("career path cache hit", zap.String("key", key))
			return &cached, nil
		}
	}

	roles, err := u.roles.ListRoles(ctx)
	if err != nil {
		return nil, internalErr(u.logger, "list roles failed", err)
	}
	path, err := career.BuildPath(roleID, roles, d)
	if err != nil {
		if errors.Is(err, career.ErrRoleNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, internalErr(u.logger, "build career path failed", err)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, path, u.cacheTTL); err != nil {
			u.logger.Warn("career path cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return path, nil
}

func toRequirements(in []RequirementInput) ([]skill.Requirement, error) {
	out := make([]skill.Requirement, 0, len(in))
	seen := make(map[uuid.UUID]bool, len(in))
	for _, r := range in {
		if r.SkillID == uuid.Nil || seen[r.SkillID] {
			return nil, ErrInvalidInput
		}
		if !validScore(&r.MinimumSCI) {
			return nil, ErrInvalidInput
		}
		seen[r.SkillID] = true
		out = append(out, skill.Requirement{
			Skill:      skill.RefID(r.SkillID),
			MinimumSCI: r.MinimumSCI,
			Importance: skill.NormalizeImportance(r.Importance),
		})
	}
	return out, nil
}
