package dto

import (
	"time"

	"talentbridge/internal/domain/assessment"
	"talentbridge/internal/domain/confidence"
	"talentbridge/internal/usecase"

	"github.com/google/uuid"
)

type AddUserSkillRequest struct {
	SkillID         uuid.UUID  `json:"skill_id"`
	SelfRating      int        `json:"self_rating"`
	LastUsedDate    *time.Time `json:"last_used_date"`
	Tag             string     `json:"tag"`
	AssessmentScore *float64   `json:"assessment_score"`
	ScenarioScore   *float64   `json:"scenario_score"`
}

type TouchUserSkillRequest struct {
	LastUsedDate time.Time `json:"last_used_date"`
}

type SubmitAssessmentRequest struct {
	Answers         map[int]string `json:"answers"`
	AssessmentScore *float64       `json:"assessment_score"`
	ScenarioScore   *float64       `json:"scenario_score"`
}

type UserSkillResponse struct {
	ID              uuid.UUID            `json:"id"`
	SkillID         uuid.UUID            `json:"skill_id"`
	SkillName       string               `json:"skill_name"`
	SelfRating      int                  `json:"self_rating"`
	Tag             string               `json:"tag"`
	LastUsedDate    *time.Time           `json:"last_used_date"`
	LastAssessed    *time.Time           `json:"last_assessed"`
	AssessmentScore float64              `json:"assessment_score"`
	FreshnessScore  float64              `json:"freshness_score"`
	ScenarioScore   float64              `json:"scenario_score"`
	SCI             float64              `json:"sci"`
	Breakdown       confidence.Breakdown `json:"breakdown"`
	Explanation     []string             `json:"explanation"`
	Graded          *assessment.Scores   `json:"graded,omitempty"`
}

// NewUserSkillResponse reports the stored SCI next to the breakdown replayed
// at request time.
func NewUserSkillResponse(s usecase.ScoredEntry) UserSkillResponse {
	e := s.Entry
	return UserSkillResponse{
		ID:              e.ID,
		SkillID:         e.Skill.ID,
		SkillName:       e.Skill.DisplayName(),
		SelfRating:      e.SelfRating,
		Tag:             string(e.Tag),
		LastUsedDate:    e.LastUsedDate,
		LastAssessed:    e.LastAssessed,
		AssessmentScore: e.AssessmentScore,
		FreshnessScore:  e.FreshnessScore,
		ScenarioScore:   e.ScenarioScore,
		SCI:             e.SCI,
		Breakdown:       s.Computation.Breakdown,
		Explanation:     confidence.Explain(s.Computation),
		Graded:          s.Graded,
	}
}
