package seeder

import (
	"context"
	"fmt"

	"talentbridge/internal/database"
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillSeed struct {
	Name        string
	Category    skill.Category
	Description string
	Items       []skill.AssessmentItem
}

var defaultSkills = []SkillSeed{
	{Name: "Go", Category: skill.CategoryProgramming, Description: "Go programming language", Items: []skill.AssessmentItem{
		{Question: "Which keyword starts a goroutine?", Type: skill.ItemMultipleChoice, Options: []string{"go", "async", "spawn", "thread"}, CorrectAnswer: "go", Difficulty: "easy", Points: 1},
		{Question: "A nil map can be read from without panicking.", Type: skill.ItemTrueFalse, Options: []string{"true", "false"}, CorrectAnswer: "true", Difficulty: "medium", Points: 1},
		{Question: "A handler leaks goroutines under load. What do you check first?", Type: skill.ItemScenario, Options: []string{"context cancellation", "GC settings", "GOMAXPROCS", "stack size"}, CorrectAnswer: "context cancellation", Difficulty: "hard", Points: 2},
	}},
	{Name: "JavaScript", Category: skill.CategoryProgramming, Description: "JavaScript language"},
	{Name: "TypeScript", Category: skill.CategoryProgramming, Description: "Typed superset of JavaScript"},
	{Name: "PostgreSQL", Category: skill.CategoryTools, Description: "Relational database", Items: []skill.AssessmentItem{
		{Question: "Which index type serves equality and range lookups by default?", Type: skill.ItemMultipleChoice, Options: []string{"btree", "hash", "gin", "brin"}, CorrectAnswer: "btree", Difficulty: "medium", Points: 1},
		{Question: "A query plan shows a sequential scan on a large table filtered by one column. What do you do?", Type: skill.ItemScenario, Options: []string{"add an index", "vacuum full", "raise work_mem", "nothing"}, CorrectAnswer: "add an index", Difficulty: "medium", Points: 2},
	}},
	{Name: "Redis", Category: skill.CategoryTools, Description: "In-memory key value store"},
	{Name: "Docker", Category: skill.CategoryTools, Description: "Container tooling"},
	{Name: "Kubernetes", Category: skill.CategoryTools, Description: "Container orchestration"},
	{Name: "React", Category: skill.CategoryFrameworks, Description: "UI library"},
	{Name: "System Design", Category: skill.CategoryOther, Description: "Designing distributed systems"},
	{Name: "Communication", Category: skill.CategorySoftSkills, Description: "Written and verbal communication"},
	{Name: "Mentoring", Category: skill.CategorySoftSkills, Description: "Growing other engineers"},
}

type SkillsSeeder struct {
	Skills []SkillSeed
}

func (SkillsSeeder) Name() string { return "skills" }

// Run inserts missing skills. Items are only written for skills created in
// this run so an operator-edited catalog is left alone.
func (s SkillsSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	inserted := 0
	err := database.InTx(ctx, db, func(tx database.Tx) error {
		for _, it := range s.Skills {
			id := uuid.New()
			n, err := tx.Exec(ctx,
				`INSERT INTO skills (id, name, category, description) VALUES ($1, $2, $3, $4) ON CONFLICT (name) DO NOTHING`,
				id, it.Name, string(it.Category), it.Description,
			)
			if err != nil {
				return fmt.Errorf("insert skill %q: %w", it.Name, err)
			}
			if n == 0 {
				continue
			}
			inserted++

			for pos, item := range it.Items {
				options := item.Options
				if options == nil {
					options = []string{}
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO skill_assessment_items (id, skill_id, position, question, item_type, options, correct_answer, difficulty, points)
					 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
					uuid.New(), id, pos, item.Question, string(item.Type), options, item.CorrectAnswer, item.Difficulty, item.Points,
				); err != nil {
					return fmt.Errorf("insert item %d of %q: %w", pos, it.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
