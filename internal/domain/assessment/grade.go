package assessment

import (
	"strings"

	"talentbridge/internal/domain/skill"
)

const defaultPoints = 1

// Scores are the two 0-100 inputs a graded submission feeds into the
// confidence engine. HasScenario is false when the definition carries no
// scenario items, in which case the caller keeps the previous scenario score.
type Scores struct {
	Assessment  float64 `json:"assessment"`
	Scenario    float64 `json:"scenario"`
	HasScenario bool    `json:"has_scenario"`
	Correct     int     `json:"correct"`
	Total       int     `json:"total"`
}

// Grade compares answers (by item index) against the definition's items.
// Scores are the share of points earned, scenario items graded separately.
// Unanswered items earn nothing.
func Grade(items []skill.AssessmentItem, answers map[int]string) Scores {
	var (
		earned, possible                 float64
		scenarioEarned, scenarioPossible float64
		out                              Scores
	)

	for i, it := range items {
		pts := float64(it.Points)
		if pts <= 0 {
			pts = defaultPoints
		}
		ok := answerMatches(it, answers[i])
		out.Total++
		if ok {
			out.Correct++
		}

		if it.Type == skill.ItemScenario {
			scenarioPossible += pts
			if ok {
				scenarioEarned += pts
			}
			continue
		}
		possible += pts
		if ok {
			earned += pts
		}
	}

	if possible > 0 {
		out.Assessment = skill.Round2(earned / possible * 100)
	}
	if scenarioPossible > 0 {
		out.HasScenario = true
		out.Scenario = skill.Round2(scenarioEarned / scenarioPossible * 100)
	}
	return out
}

func answerMatches(it skill.AssessmentItem, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	return strings.EqualFold(answer, strings.TrimSpace(it.CorrectAnswer))
}
