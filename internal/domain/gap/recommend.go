package gap

import (
	"sort"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
)

const highPriorityGap = 20

type Recommendation struct {
	SkillID    uuid.UUID `json:"skill_id"`
	SkillName  string    `json:"skill_name"`
	Priority   Priority  `json:"priority"`
	CurrentSCI float64   `json:"current_sci"`
	TargetSCI  float64   `json:"target_sci"`
	Gap        float64   `json:"gap"`
	Missing    bool      `json:"missing"`
}

// Recommend lists what to work on: every missing skill first, in requirement
// order, then weak skills by descending gap. Equal gaps keep requirement order.
func Recommend(res Result) []Recommendation {
	out := make([]Recommendation, 0, len(res.Missing)+len(res.Weak))

	missing := append([]Item(nil), res.Missing...)
	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].order < missing[j].order
	})
	for _, it := range missing {
		out = append(out, Recommendation{
			SkillID:    it.SkillID,
			SkillName:  it.SkillName,
			Priority:   PriorityHigh,
			CurrentSCI: 0,
			TargetSCI:  it.RequiredSCI,
			Gap:        it.RequiredSCI,
			Missing:    true,
		})
	}

	weak := append([]Item(nil), res.Weak...)
	sort.SliceStable(weak, func(i, j int) bool {
		if weak[i].Gap != weak[j].Gap {
			return weak[i].Gap > weak[j].Gap
		}
		return weak[i].order < weak[j].order
	})
	for _, it := range weak {
		p := PriorityMedium
		if it.Gap > highPriorityGap {
			p = PriorityHigh
		}
		out = append(out, Recommendation{
			SkillID:    it.SkillID,
			SkillName:  it.SkillName,
			Priority:   p,
			CurrentSCI: it.UserSCI,
			TargetSCI:  it.RequiredSCI,
			Gap:        it.Gap,
		})
	}

	return out
}
