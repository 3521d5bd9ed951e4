package usecase

import (
	"context"
	"errors"
	"math"
	"net/mail"
	"strings"

	"talentbridge/internal/domain/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateUserInput struct {
	Name            string
	Email           string
	ExperienceYears float64
}

type UserUsecase interface {
	CreateUser(ctx context.Context, in CreateUserInput) (user.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (user.User, error)
}

type Users struct {
	repo   user.Repository
	logger *zap.Logger
}

func NewUserUsecase(repo user.Repository, logger *zap.Logger) *Users {
	return &Users{repo: repo, logger: orNop(logger)}
}

func (u *Users) CreateUser(ctx context.Context, in CreateUserInput) (user.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return user.User{}, ErrInvalidInput
	}
	if in.ExperienceYears < 0 || math.IsNaN(in.ExperienceYears) {
		return user.User{}, ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return user.User{}, ErrInvalidInput
		}
	}

	created, err := u.repo.Create(ctx, user.User{
		ID:              uuid.New(),
		Name:            name,
		Email:           email,
		ExperienceYears: in.ExperienceYears,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, internalErr(u.logger, "create user failed", err)
	}
	return created, nil
}

func (u *Users) GetUser(ctx context.Context, id uuid.UUID) (user.User, error) {
	if id == uuid.Nil {
		return user.User{}, ErrInvalidInput
	}
	usr, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, internalErr(u.logger, "get user failed", err, zap.String("user_id", id.String()))
	}
	return usr, nil
}
