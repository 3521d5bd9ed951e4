package repository

import (
	"context"
	"strings"

	"talentbridge/internal/database"
	"talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	ListSkills(ctx context.Context) ([]skill.Definition, error)
	GetSkill(ctx context.Context, id uuid.UUID) (skill.Definition, error)
	CreateSkill(ctx context.Context, def skill.Definition) (skill.Definition, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context) ([]skill.Definition, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, description, created_at FROM skills ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Definition, 0)
	for rows.Next() {
		var d skill.Definition
		var category string
		if err := rows.Scan(&d.ID, &d.Name, &category, &d.Description, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Category = skill.ParseCategory(category)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSkill loads the definition together with its assessment items.
func (r *PostgresSkillRepository) GetSkill(ctx context.Context, id uuid.UUID) (skill.Definition, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, category, description, created_at FROM skills WHERE id = $1`,
		id,
	)

	var d skill.Definition
	var category string
	if err := row.Scan(&d.ID, &d.Name, &category, &d.Description, &d.CreatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return skill.Definition{}, ErrSkillNotFound
		}
		return skill.Definition{}, err
	}
	d.Category = skill.ParseCategory(category)

	rows, err := r.db.Query(ctx,
		`SELECT question, item_type, options, correct_answer, difficulty, points
		 FROM skill_assessment_items
		 WHERE skill_id = $1
		 ORDER BY position ASC`,
		id,
	)
	if err != nil {
		return skill.Definition{}, err
	}
	defer rows.Close()

	d.Items = make([]skill.AssessmentItem, 0)
	for rows.Next() {
		var it skill.AssessmentItem
		var itemType string
		if err := rows.Scan(&it.Question, &itemType, &it.Options, &it.CorrectAnswer, &it.Difficulty, &it.Points); err != nil {
			return skill.Definition{}, err
		}
		it.Type = skill.ItemType(itemType)
		d.Items = append(d.Items, it)
	}
	if err := rows.Err(); err != nil {
		return skill.Definition{}, err
	}
	return d, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, def skill.Definition) (skill.Definition, error) {
	if def.ID == uuid.Nil {
		def.ID = uuid.New()
	}
	def.Name = strings.TrimSpace(def.Name)

	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO skills (id, name, category, description)
			 VALUES ($1, $2, $3, $4)
			 RETURNING created_at`,
			def.ID, def.Name, string(def.Category), def.Description,
		)
		if err := row.Scan(&def.CreatedAt); err != nil {
			return err
		}

		for i, it := range def.Items {
			options := it.Options
			if options == nil {
				options = []string{}
			}
			_, err := tx.Exec(ctx,
				`INSERT INTO skill_assessment_items (
					id, skill_id, position, question, item_type, options, correct_answer, difficulty, points
				)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
				uuid.New(), def.ID, i, it.Question, string(it.Type), options, it.CorrectAnswer, it.Difficulty, it.Points,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return skill.Definition{}, ErrSkillExists
		}
		return skill.Definition{}, err
	}
	return def, nil
}
