package repository

import "errors"

var (
	ErrSkillNotFound     = errors.New("skill not found")
	ErrSkillExists       = errors.New("skill already exists")
	ErrUserSkillNotFound = errors.New("user skill not found")
	ErrUserSkillExists   = errors.New("user skill already exists")
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleExists        = errors.New("role already exists")
	ErrJobNotFound       = errors.New("job not found")
	ErrJobClosed         = errors.New("job is closed")
	ErrApplicationExists = errors.New("application already exists")
	ErrMissingReference  = errors.New("referenced record does not exist")
)
