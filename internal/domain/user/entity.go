package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a person who holds a skill profile and applies to jobs.
type User struct {
	ID              uuid.UUID
	Name            string
	Email           string
	ExperienceYears float64
	CreatedAt       time.Time
}
