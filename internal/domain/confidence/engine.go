package confidence

import (
	"errors"
	"fmt"
	"math"
	"time"

	"talentbridge/internal/domain/skill"
)

var ErrInvalidWeights = errors.New("invalid sci weights")

const weightSumTolerance = 1e-9

// Weights are the share of each input in the Skill Confidence Index.
type Weights struct {
	Assessment float64 `json:"assessment"`
	Freshness  float64 `json:"freshness"`
	Scenario   float64 `json:"scenario"`
}

func DefaultWeights() Weights {
	return Weights{
		Assessment: 0.40,
		Freshness:  0.35,
		Scenario:   0.25,
	}
}

func (w Weights) Validate() error {
	if w.Assessment < 0 || w.Freshness < 0 || w.Scenario < 0 {
		return fmt.Errorf("%w: negative weight", ErrInvalidWeights)
	}
	sum := w.Assessment + w.Freshness + w.Scenario
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %v", ErrInvalidWeights, sum)
	}
	return nil
}

type Inputs struct {
	AssessmentScore float64
	LastUsedDate    *time.Time
	ScenarioScore   float64
}

// Term is one itemized line of an SCI computation.
type Term struct {
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

type Breakdown struct {
	Assessment Term `json:"assessment"`
	Freshness  Term `json:"freshness"`
	Scenario   Term `json:"scenario"`
}

func (b Breakdown) Total() float64 {
	return b.Assessment.Contribution + b.Freshness.Contribution + b.Scenario.Contribution
}

type Result struct {
	SCI       float64   `json:"sci"`
	Freshness float64   `json:"freshness"`
	Breakdown Breakdown `json:"breakdown"`
}

type Engine struct {
	weights Weights
}

func NewEngine(w Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: w}, nil
}

func (e *Engine) Weights() Weights {
	return e.weights
}

func (e *Engine) Compute(in Inputs, now time.Time) Result {
	assessment := skill.Score(in.AssessmentScore)
	scenario := skill.Score(in.ScenarioScore)
	freshness := Freshness(in.LastUsedDate, now)

	raw := assessment*e.weights.Assessment + freshness*e.weights.Freshness + scenario*e.weights.Scenario

	return Result{
		SCI:       skill.Round2(raw),
		Freshness: freshness,
		Breakdown: Breakdown{
			Assessment: term(assessment, e.weights.Assessment),
			Freshness:  term(freshness, e.weights.Freshness),
			Scenario:   term(scenario, e.weights.Scenario),
		},
	}
}

func term(score, weight float64) Term {
	return Term{Score: score, Weight: weight, Contribution: score * weight}
}

// UpdateInput carries the scores of a new submission. Nil means keep the
// current value.
type UpdateInput struct {
	AssessmentScore *float64
	ScenarioScore   *float64
}

// Update recomputes an entry's derived scores. Freshness is always refreshed
// against now; LastAssessed moves only when a new assessment score arrives.
func (e *Engine) Update(entry skill.ProfileEntry, in UpdateInput, now time.Time) skill.ProfileEntry {
	out := entry
	if in.AssessmentScore != nil {
		out.AssessmentScore = skill.Score(*in.AssessmentScore)
		assessed := now
		out.LastAssessed = &assessed
	}
	if in.ScenarioScore != nil {
		out.ScenarioScore = skill.Score(*in.ScenarioScore)
	}
	return e.apply(out, now)
}

// Touch records a manual last-used date and recomputes.
func (e *Engine) Touch(entry skill.ProfileEntry, lastUsed time.Time, now time.Time) skill.ProfileEntry {
	out := entry
	used := lastUsed
	out.LastUsedDate = &used
	return e.apply(out, now)
}

func (e *Engine) apply(entry skill.ProfileEntry, now time.Time) skill.ProfileEntry {
	res := e.Compute(Inputs{
		AssessmentScore: entry.AssessmentScore,
		LastUsedDate:    entry.LastUsedDate,
		ScenarioScore:   entry.ScenarioScore,
	}, now)
	entry.FreshnessScore = res.Freshness
	entry.SCI = res.SCI
	return entry
}

// Explain renders the breakdown as audit lines, in a fixed order.
func Explain(res Result) []string {
	b := res.Breakdown
	return []string{
		fmt.Sprintf("assessment %.2f x %.2f = %.2f", b.Assessment.Score, b.Assessment.Weight, b.Assessment.Contribution),
		fmt.Sprintf("freshness %.2f x %.2f = %.2f", b.Freshness.Score, b.Freshness.Weight, b.Freshness.Contribution),
		fmt.Sprintf("scenario %.2f x %.2f = %.2f", b.Scenario.Score, b.Scenario.Weight, b.Scenario.Contribution),
		fmt.Sprintf("sci = %.2f", res.SCI),
	}
}
