package dto

import (
	"time"

	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

type AssessmentItemPayload struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Difficulty    string   `json:"difficulty"`
	Points        int      `json:"points"`
}

type CreateSkillRequest struct {
	Name        string                  `json:"name"`
	Category    string                  `json:"category"`
	Description string                  `json:"description"`
	Items       []AssessmentItemPayload `json:"assessment_items"`
}

func (r CreateSkillRequest) DomainItems() []skill.AssessmentItem {
	out := make([]skill.AssessmentItem, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, skill.AssessmentItem{
			Question:      it.Question,
			Type:          skill.ItemType(it.Type),
			Options:       it.Options,
			CorrectAnswer: it.CorrectAnswer,
			Difficulty:    it.Difficulty,
			Points:        it.Points,
		})
	}
	return out
}

type SkillResponse struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Category    string                  `json:"category"`
	Description string                  `json:"description"`
	Items       []AssessmentItemPayload `json:"assessment_items,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// NewSkillResponse never exposes correct answers.
func NewSkillResponse(d skill.Definition) SkillResponse {
	res := SkillResponse{
		ID:          d.ID,
		Name:        d.Name,
		Category:    string(d.Category),
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
	if len(d.Items) > 0 {
		res.Items = make([]AssessmentItemPayload, 0, len(d.Items))
		for _, it := range d.Items {
			options := it.Options
			if options == nil {
				options = []string{}
			}
			res.Items = append(res.Items, AssessmentItemPayload{
				Question:   it.Question,
				Type:       string(it.Type),
				Options:    options,
				Difficulty: it.Difficulty,
				Points:     it.Points,
			})
		}
	}
	return res
}

type RequirementPayload struct {
	SkillID    uuid.UUID `json:"skill_id"`
	SkillName  string    `json:"skill_name,omitempty"`
	MinimumSCI float64   `json:"minimum_sci"`
	Importance int       `json:"importance,omitempty"`
}

func NewRequirementPayloads(reqs []skill.Requirement) []RequirementPayload {
	out := make([]RequirementPayload, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, RequirementPayload{
			SkillID:    r.Skill.ID,
			SkillName:  r.Skill.DisplayName(),
			MinimumSCI: r.MinimumSCI,
			Importance: r.Importance,
		})
	}
	return out
}
