package dto

import (
	"time"

	"talentbridge/internal/domain/user"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	ExperienceYears float64 `json:"experience_years"`
}

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email,omitempty"`
	ExperienceYears float64   `json:"experience_years"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		ExperienceYears: u.ExperienceYears,
		CreatedAt:       u.CreatedAt,
	}
}
