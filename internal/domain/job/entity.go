package job

import (
	"time"

	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func ParseStatus(s string) Status {
	if Status(s) == StatusClosed {
		return StatusClosed
	}
	return StatusOpen
}

type Job struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements []skill.Requirement
	Applications []Application
	Status       Status
	CreatedAt    time.Time
}

func (j Job) IsOpen() bool {
	return j.Status != StatusClosed
}

func (j Job) HasApplicant(candidateID uuid.UUID) bool {
	for _, a := range j.Applications {
		if a.CandidateID == candidateID {
			return true
		}
	}
	return false
}

// CandidateIDs lists applicants in application order.
func (j Job) CandidateIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(j.Applications)+1)
	for _, a := range j.Applications {
		out = append(out, a.CandidateID)
	}
	return out
}

// Application is a candidate's entry on a job. SkillMatchPercentage and
// Ranking are computed by the matching engine and the ranker.
type Application struct {
	ID                   uuid.UUID
	JobID                uuid.UUID
	CandidateID          uuid.UUID
	AppliedAt            time.Time
	SkillMatchPercentage int
	Ranking              int
}
