package ranking

import (
	"runtime"
	"sort"

	"talentbridge/internal/domain/matching"
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Candidate struct {
	ID              uuid.UUID
	Name            string
	ExperienceYears float64
	Skills          []skill.ProfileEntry
}

type Ranked struct {
	CandidateID     uuid.UUID       `json:"candidate_id"`
	Name            string          `json:"name"`
	ExperienceYears float64         `json:"experience_years"`
	Ranking         int             `json:"ranking"`
	Match           matching.Result `json:"match"`
}

// Ranker scores candidates in parallel and orders them deterministically.
// Workers <= 0 uses GOMAXPROCS.
type Ranker struct {
	Workers int
}

func NewRanker(workers int) *Ranker {
	return &Ranker{Workers: workers}
}

func (r *Ranker) workers() int {
	if r == nil || r.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return r.Workers
}

// Rank orders by match percentage, then experience, both descending. Ties
// beyond that keep input order. Rankings are 1-based and contiguous.
func (r *Ranker) Rank(candidates []Candidate, reqs []skill.Requirement) []Ranked {
	out := make([]Ranked, len(candidates))
	if len(candidates) == 0 {
		return out
	}

	var g errgroup.Group
	g.SetLimit(r.workers())
	for i := range candidates {
		g.Go(func() error {
			c := candidates[i]
			out[i] = Ranked{
				CandidateID:     c.ID,
				Name:            c.Name,
				ExperienceYears: c.ExperienceYears,
				Match:           matching.Match(c.Skills, reqs),
			}
			return nil
		})
	}
	// Workers only write their own slot and never fail.
	g.Wait()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Match.MatchPercentage != out[j].Match.MatchPercentage {
			return out[i].Match.MatchPercentage > out[j].Match.MatchPercentage
		}
		return out[i].ExperienceYears > out[j].ExperienceYears
	})

	for i := range out {
		out[i].Ranking = i + 1
	}
	return out
}

// Rank uses a default Ranker.
func Rank(candidates []Candidate, reqs []skill.Requirement) []Ranked {
	return (&Ranker{}).Rank(candidates, reqs)
}
