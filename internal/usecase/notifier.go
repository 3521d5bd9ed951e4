package usecase

import (
	"talentbridge/internal/domain/job"

	"github.com/google/uuid"
)

// ApplicationNotifier is told about every committed re-ranking of a job.
type ApplicationNotifier interface {
	ApplicationsRanked(jobID uuid.UUID, apps []job.Application)
}

type nopNotifier struct{}

func (nopNotifier) ApplicationsRanked(uuid.UUID, []job.Application) {}
