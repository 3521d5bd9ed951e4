package gap

import (
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

type Level string

const (
	LevelReady       Level = "ready"
	LevelNearlyReady Level = "nearly_ready"
	LevelDeveloping  Level = "developing"
	LevelNotReady    Level = "not_ready"
)

const (
	readyThreshold       = 80
	nearlyReadyThreshold = 60
	developingThreshold  = 40
)

// LevelFor buckets a readiness percentage. Role recommendations use the same
// thresholds.
func LevelFor(readiness int) Level {
	switch {
	case readiness >= readyThreshold:
		return LevelReady
	case readiness >= nearlyReadyThreshold:
		return LevelNearlyReady
	case readiness >= developingThreshold:
		return LevelDeveloping
	default:
		return LevelNotReady
	}
}

func (l Level) Label() string {
	switch l {
	case LevelReady:
		return "Ready to apply"
	case LevelNearlyReady:
		return "Nearly ready"
	case LevelDeveloping:
		return "Developing"
	default:
		return "Not ready yet"
	}
}

// Rank orders levels from best to worst.
func (l Level) Rank() int {
	switch l {
	case LevelReady:
		return 0
	case LevelNearlyReady:
		return 1
	case LevelDeveloping:
		return 2
	default:
		return 3
	}
}

// Item is one classified requirement. Gap is set for missing and weak skills,
// ExceedBy for strong ones; both are non-negative.
type Item struct {
	SkillID     uuid.UUID `json:"skill_id"`
	SkillName   string    `json:"skill_name"`
	RequiredSCI float64   `json:"required_sci"`
	UserSCI     float64   `json:"user_sci"`
	Gap         float64   `json:"gap,omitempty"`
	ExceedBy    float64   `json:"exceed_by,omitempty"`

	order int
}

type Result struct {
	ReadinessPercentage int    `json:"readiness_percentage"`
	Level               Level  `json:"level"`
	OverallAssessment   string `json:"overall_assessment"`
	Missing             []Item `json:"missing"`
	Weak                []Item `json:"weak"`
	Strong              []Item `json:"strong"`
	TotalRequirements   int    `json:"total_requirements"`
}

func Analyze(profile []skill.ProfileEntry, reqs []skill.Requirement) Result {
	byID := skill.IndexByID(profile)

	res := Result{
		Missing: make([]Item, 0),
		Weak:    make([]Item, 0),
		Strong:  make([]Item, 0),
	}

	for i, r := range reqs {
		if !r.Skill.Resolvable() {
			continue
		}
		res.TotalRequirements++

		required := skill.Score(r.MinimumSCI)
		it := Item{
			SkillID:     r.Skill.ID,
			SkillName:   r.Skill.DisplayName(),
			RequiredSCI: required,
			order:       i,
		}

		entry, ok := byID[r.Skill.ID]
		if !ok {
			it.Gap = required
			res.Missing = append(res.Missing, it)
			continue
		}

		it.UserSCI = skill.Score(entry.SCI)
		if it.SkillName == skill.UnknownName && entry.Skill.Joined() {
			it.SkillName = entry.Skill.Name
		}

		if it.UserSCI >= required {
			it.ExceedBy = skill.Round2(it.UserSCI - required)
			res.Strong = append(res.Strong, it)
			continue
		}
		it.Gap = skill.Round2(required - it.UserSCI)
		res.Weak = append(res.Weak, it)
	}

	res.ReadinessPercentage = readiness(len(res.Strong), res.TotalRequirements)
	res.Level = LevelFor(res.ReadinessPercentage)
	res.OverallAssessment = res.Level.Label()
	return res
}

func readiness(strong, total int) int {
	if total == 0 {
		return 100
	}
	return skill.RoundPercent(float64(strong) / float64(total) * 100)
}
