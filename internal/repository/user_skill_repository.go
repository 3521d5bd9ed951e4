package repository

import (
	"context"

	"talentbridge/internal/database"
	"talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.ProfileEntry, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]skill.ProfileEntry, error)
	FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (skill.ProfileEntry, error)
	Create(ctx context.Context, userID uuid.UUID, e skill.ProfileEntry) (skill.ProfileEntry, error)
	UpdateScores(ctx context.Context, userID uuid.UUID, e skill.ProfileEntry) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillColumns = `us.user_id, us.id, us.skill_id, COALESCE(s.name, ''), us.self_rating, us.last_used_date,
	us.assessment_score, us.freshness_score, us.scenario_score, us.sci, us.last_assessed, us.tag`

func scanEntry(row database.Row) (uuid.UUID, skill.ProfileEntry, error) {
	var userID, skillID uuid.UUID
	var name, tag string
	var e skill.ProfileEntry
	err := row.Scan(
		&userID, &e.ID, &skillID, &name, &e.SelfRating, &e.LastUsedDate,
		&e.AssessmentScore, &e.FreshnessScore, &e.ScenarioScore, &e.SCI, &e.LastAssessed, &tag,
	)
	if err != nil {
		return uuid.Nil, skill.ProfileEntry{}, err
	}
	e.Skill = skill.NewRef(skillID, name)
	e.Tag = skill.ParseTag(tag)
	return userID, e, nil
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.ProfileEntry, error) {
	byUser, err := r.FindByUserIDs(ctx, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	out := byUser[userID]
	if out == nil {
		out = make([]skill.ProfileEntry, 0)
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]skill.ProfileEntry, error) {
	out := make(map[uuid.UUID][]skill.ProfileEntry, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+userSkillColumns+`
		 FROM user_skills us
		 LEFT JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = ANY($1)
		 ORDER BY us.user_id, s.name ASC`,
		userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		userID, e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindByUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) (skill.ProfileEntry, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userSkillColumns+`
		 FROM user_skills us
		 LEFT JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1 AND us.skill_id = $2`,
		userID, skillID,
	)

	_, e, err := scanEntry(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return skill.ProfileEntry{}, ErrUserSkillNotFound
		}
		return skill.ProfileEntry{}, err
	}
	return e, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, userID uuid.UUID, e skill.ProfileEntry) (skill.ProfileEntry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (
			id, user_id, skill_id, self_rating, last_used_date,
			assessment_score, freshness_score, scenario_score, sci, last_assessed, tag
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		e.ID, userID, e.Skill.ID, e.SelfRating, e.LastUsedDate,
		e.AssessmentScore, e.FreshnessScore, e.ScenarioScore, e.SCI, e.LastAssessed, string(e.Tag),
	)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return skill.ProfileEntry{}, ErrUserSkillExists
		case postgres.IsForeignKeyViolation(err):
			return skill.ProfileEntry{}, ErrMissingReference
		}
		return skill.ProfileEntry{}, err
	}
	return r.FindByUserAndSkill(ctx, userID, e.Skill.ID)
}

// UpdateScores writes back every engine-owned field of an entry.
func (r *PostgresUserSkillRepository) UpdateScores(ctx context.Context, userID uuid.UUID, e skill.ProfileEntry) error {
	n, err := r.db.Exec(ctx,
		`UPDATE user_skills
		 SET last_used_date = $1, assessment_score = $2, freshness_score = $3,
		     scenario_score = $4, sci = $5, last_assessed = $6
		 WHERE id = $7 AND user_id = $8`,
		e.LastUsedDate, e.AssessmentScore, e.FreshnessScore,
		e.ScenarioScore, e.SCI, e.LastAssessed,
		e.ID, userID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}
