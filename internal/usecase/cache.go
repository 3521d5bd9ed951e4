package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Cache interface {
	Available() bool
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	DeleteIfValue(ctx context.Context, key string, value string) (bool, error)
}

const careerPathPattern = "career:path:*"

func CareerPathCacheKey(roleID uuid.UUID, depth int) string {
	return fmt.Sprintf("career:path:%s:%d", roleID, depth)
}

func AssessmentLockKey(userID, skillID uuid.UUID) string {
	return fmt.Sprintf("assessment:lock:%s:%s", userID, skillID)
}
