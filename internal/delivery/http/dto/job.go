package dto

import (
	"time"

	"talentbridge/internal/domain/job"
	"talentbridge/internal/domain/matching"
	"talentbridge/internal/usecase"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	OwnerID      uuid.UUID            `json:"owner_id"`
	Title        string               `json:"title"`
	Company      string               `json:"company"`
	Location     string               `json:"location"`
	Description  string               `json:"description"`
	Requirements []RequirementPayload `json:"requirements"`
}

func (r CreateJobRequest) Input() usecase.CreateJobInput {
	return usecase.CreateJobInput{
		OwnerID:      r.OwnerID,
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Description:  r.Description,
		Requirements: RequirementInputs(r.Requirements),
	}
}

type ApplyRequest struct {
	CandidateID uuid.UUID `json:"candidate_id"`
}

type JobResponse struct {
	ID           uuid.UUID            `json:"id"`
	OwnerID      uuid.UUID            `json:"owner_id"`
	Title        string               `json:"title"`
	Company      string               `json:"company"`
	Location     string               `json:"location"`
	Description  string               `json:"description"`
	Status       string               `json:"status"`
	Requirements []RequirementPayload `json:"requirements"`
	Applicants   int                  `json:"applicants"`
	CreatedAt    time.Time            `json:"created_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		OwnerID:      j.OwnerID,
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Description:  j.Description,
		Status:       string(j.Status),
		Requirements: NewRequirementPayloads(j.Requirements),
		Applicants:   len(j.Applications),
		CreatedAt:    j.CreatedAt,
	}
}

type JobMatchResponse struct {
	JobID uuid.UUID       `json:"job_id"`
	Title string          `json:"title"`
	Match matching.Result `json:"match"`
}

type ApplicationResponse struct {
	ID                   uuid.UUID       `json:"id"`
	JobID                uuid.UUID       `json:"job_id"`
	CandidateID          uuid.UUID       `json:"candidate_id"`
	AppliedAt            time.Time       `json:"applied_at"`
	SkillMatchPercentage int             `json:"skill_match_percentage"`
	Ranking              int             `json:"ranking"`
	Applicants           int             `json:"applicants"`
	Match                matching.Result `json:"match"`
}

func NewApplicationResponse(r usecase.ApplyResult) ApplicationResponse {
	a := r.Application
	return ApplicationResponse{
		ID:                   a.ID,
		JobID:                a.JobID,
		CandidateID:          a.CandidateID,
		AppliedAt:            a.AppliedAt,
		SkillMatchPercentage: a.SkillMatchPercentage,
		Ranking:              a.Ranking,
		Applicants:           r.Applicants,
		Match:                r.Match,
	}
}
