package matching

import (
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

type Status string

const (
	StatusMissing Status = "missing"
	StatusBelow   Status = "below"
	StatusMeets   Status = "meets"
)

const maxSkillScore = 100.0

type BreakdownItem struct {
	SkillID      uuid.UUID `json:"skill_id"`
	SkillName    string    `json:"skill_name"`
	Importance   int       `json:"importance"`
	MinimumSCI   float64   `json:"minimum_sci"`
	UserSCI      float64   `json:"user_sci"`
	Contribution float64   `json:"contribution"`
	MaxPossible  float64   `json:"max_possible"`
	Status       Status    `json:"status"`
}

type Result struct {
	MatchPercentage  int             `json:"match_percentage"`
	TotalScore       float64         `json:"total_score"`
	MaxPossibleScore float64         `json:"max_possible_score"`
	Breakdown        []BreakdownItem `json:"breakdown"`
}

func (r Result) Count(s Status) int {
	n := 0
	for _, it := range r.Breakdown {
		if it.Status == s {
			n++
		}
	}
	return n
}

// Match scores a profile against importance-weighted requirements. Each
// requirement is worth importance*100; a present skill earns importance*sci.
func Match(profile []skill.ProfileEntry, reqs []skill.Requirement) Result {
	byID := skill.IndexByID(profile)

	res := Result{Breakdown: make([]BreakdownItem, 0, len(reqs))}

	for _, r := range reqs {
		if !r.Skill.Resolvable() {
			continue
		}

		importance := skill.NormalizeImportance(r.Importance)
		maxPossible := float64(importance) * maxSkillScore
		res.MaxPossibleScore += maxPossible

		it := BreakdownItem{
			SkillID:     r.Skill.ID,
			SkillName:   r.Skill.DisplayName(),
			Importance:  importance,
			MinimumSCI:  skill.Score(r.MinimumSCI),
			MaxPossible: maxPossible,
			Status:      StatusMissing,
		}

		us, ok := byID[r.Skill.ID]
		if ok {
			it.UserSCI = skill.Score(us.SCI)
			it.Contribution = float64(importance) * it.UserSCI
			if it.UserSCI >= it.MinimumSCI {
				it.Status = StatusMeets
			} else {
				it.Status = StatusBelow
			}
			if it.SkillName == skill.UnknownName && us.Skill.Joined() {
				it.SkillName = us.Skill.Name
			}
			res.TotalScore += it.Contribution
		}

		res.Breakdown = append(res.Breakdown, it)
	}

	res.MatchPercentage = percentage(res.TotalScore, res.MaxPossibleScore)
	return res
}

func percentage(total, maxPossible float64) int {
	if maxPossible <= 0 {
		return 0
	}
	p := skill.RoundPercent(total / maxPossible * 100)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
