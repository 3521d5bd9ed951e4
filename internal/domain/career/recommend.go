package career

import (
	"runtime"
	"sort"

	"talentbridge/internal/domain/gap"
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type RoleMatch struct {
	RoleID              uuid.UUID  `json:"role_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	ReadinessPercentage int        `json:"readiness_percentage"`
	Level               gap.Level  `json:"level"`
	Analysis            gap.Result `json:"analysis"`
}

type Recommendations struct {
	Ready       []RoleMatch `json:"ready"`
	NearlyReady []RoleMatch `json:"nearly_ready"`
	Developing  []RoleMatch `json:"developing"`
	NotReady    []RoleMatch `json:"not_ready"`
	All         []RoleMatch `json:"all"`
}

// Recommend runs gap analysis against every role and buckets the results by
// readiness level. Every list is ordered by readiness, highest first, with
// input order kept on ties.
func Recommend(profile []skill.ProfileEntry, roles []Role) Recommendations {
	matches := make([]RoleMatch, len(roles))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range roles {
		g.Go(func() error {
			r := roles[i]
			res := gap.Analyze(profile, r.Requirements)
			matches[i] = RoleMatch{
				RoleID:              r.ID,
				Title:               r.Title,
				Description:         r.Description,
				ReadinessPercentage: res.ReadinessPercentage,
				Level:               res.Level,
				Analysis:            res,
			}
			return nil
		})
	}
	// Workers only write their own slot and never fail.
	g.Wait()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].ReadinessPercentage > matches[j].ReadinessPercentage
	})

	out := Recommendations{
		Ready:       make([]RoleMatch, 0),
		NearlyReady: make([]RoleMatch, 0),
		Developing:  make([]RoleMatch, 0),
		NotReady:    make([]RoleMatch, 0),
		All:         matches,
	}
	for _, m := range matches {
		switch m.Level {
		case gap.LevelReady:
			out.Ready = append(out.Ready, m)
		case gap.LevelNearlyReady:
			out.NearlyReady = append(out.NearlyReady, m)
		case gap.LevelDeveloping:
			out.Developing = append(out.Developing, m)
		default:
			out.NotReady = append(out.NotReady, m)
		}
	}
	return out
}
