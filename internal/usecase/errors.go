package usecase

import (
	"errors"

	"go.uber.org/zap"
)

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrSkillNotFound     = errors.New("skill not found")
	ErrSkillExists       = errors.New("skill already exists")
	ErrUserSkillNotFound = errors.New("skill is not on the profile")
	ErrUserSkillExists   = errors.New("skill already on the profile")
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleExists        = errors.New("role already exists")
	ErrJobNotFound       = errors.New("job not found")
	ErrJobClosed         = errors.New("job is closed")
	ErrAlreadyApplied    = errors.New("already applied to this job")

	ErrAssessmentCooldown   = errors.New("assessment retake is on cooldown")
	ErrAssessmentInProgress = errors.New("assessment submission already in progress")
	ErrNoAssessmentItems    = errors.New("skill has no assessment items")
)

// internalErr logs the cause and hides it behind ErrInternal.
func internalErr(log *zap.Logger, msg string, err error, fields ...zap.Field) error {
	log.Error(msg, append(fields, zap.Error(err))...)
	return ErrInternal
}

func orNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
