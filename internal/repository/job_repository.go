package repository

import (
	"context"
	"strings"

	"talentbridge/internal/database"
	"talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/job"
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

type JobRepository interface {
	GetJob(ctx context.Context, id uuid.UUID) (job.Job, error)
	CreateJob(ctx context.Context, j job.Job) (job.Job, error)
	// SaveApplication locks the posting, re-reads its applications, lets
	// rerank order them with app appended, then inserts app and rewrites
	// every other ranking in the same transaction.
	SaveApplication(ctx context.Context, app job.Application, rerank RerankFunc) (job.Application, error)
}

// RerankFunc receives the job's applications in application order and
// returns them with Ranking and SkillMatchPercentage filled in. It runs
// while the posting row is locked.
type RerankFunc func(ctx context.Context, apps []job.Application) ([]job.Application, error)

const selectApplications = `SELECT id, job_id, candidate_id, applied_at, skill_match_percentage, ranking
	 FROM job_applications
	 WHERE job_id = $1
	 ORDER BY applied_at ASC, id ASC`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// GetJob loads a posting with its requirements and applications.
func (r *PostgresJobRepository) GetJob(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, owner_id, title, company, location, description, status, created_at
		 FROM jobs
		 WHERE id = $1`,
		id,
	)

	var j job.Job
	var status string
	if err := row.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Company, &j.Location, &j.Description, &status, &j.CreatedAt); err != nil {
		if postgres.IsNoRows(err) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	j.Status = job.ParseStatus(status)

	reqRows, err := r.db.Query(ctx,
		`SELECT js.job_id, js.skill_id, COALESCE(s.name, ''), js.minimum_sci, js.importance_weight
		 FROM job_skills js
		 LEFT JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY js.position ASC`,
		id,
	)
	if err != nil {
		return job.Job{}, err
	}
	reqs, err := scanRequirements(reqRows)
	if err != nil {
		return job.Job{}, err
	}
	j.Requirements = nonNilRequirements(reqs[id])

	appRows, err := r.db.Query(ctx, selectApplications, id)
	if err != nil {
		return job.Job{}, err
	}
	j.Applications, err = scanApplications(appRows)
	if err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func scanApplications(rows database.Rows) ([]job.Application, error) {
	defer rows.Close()

	out := make([]job.Application, 0)
	for rows.Next() {
		var a job.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.AppliedAt, &a.SkillMatchPercentage, &a.Ranking); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) CreateJob(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = job.StatusOpen
	}
	j.Title = strings.TrimSpace(j.Title)

	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO jobs (id, owner_id, title, company, location, description, status)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)
			 RETURNING created_at`,
			j.ID, j.OwnerID, j.Title, j.Company, j.Location, j.Description, string(j.Status),
		)
		if err := row.Scan(&j.CreatedAt); err != nil {
			return err
		}
		for i, req := range j.Requirements {
			_, err := tx.Exec(ctx,
				`INSERT INTO job_skills (job_id, skill_id, minimum_sci, importance_weight, position)
				 VALUES ($1,$2,$3,$4,$5)`,
				j.ID, req.Skill.ID, req.MinimumSCI, skill.NormalizeImportance(req.Importance), i,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return job.Job{}, err
	}
	if j.Applications == nil {
		j.Applications = make([]job.Application, 0)
	}
	return j, nil
}

func (r *PostgresJobRepository) SaveApplication(ctx context.Context, app job.Application, rerank RerankFunc) (job.Application, error) {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}

	var saved job.Application
	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		var status string
		row := tx.QueryRow(ctx, `SELECT status FROM jobs WHERE id = $1 FOR UPDATE`, app.JobID)
		if err := row.Scan(&status); err != nil {
			if postgres.IsNoRows(err) {
				return ErrJobNotFound
			}
			return err
		}
		if job.ParseStatus(status) != job.StatusOpen {
			return ErrJobClosed
		}

		rows, err := tx.Query(ctx, selectApplications, app.JobID)
		if err != nil {
			return err
		}
		current, err := scanApplications(rows)
		if err != nil {
			return err
		}
		for _, it := range current {
			if it.CandidateID == app.CandidateID {
				return ErrApplicationExists
			}
		}

		ranked, err := rerank(ctx, append(current, app))
		if err != nil {
			return err
		}

		found := false
		for _, it := range ranked {
			if it.ID == app.ID {
				saved, found = it, true
				break
			}
		}
		if !found {
			return ErrMissingReference
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO job_applications (id, job_id, candidate_id, applied_at, skill_match_percentage, ranking)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			saved.ID, saved.JobID, saved.CandidateID, saved.AppliedAt, saved.SkillMatchPercentage, saved.Ranking,
		)
		if err != nil {
			return err
		}
		for _, it := range ranked {
			if it.ID == saved.ID {
				continue
			}
			_, err := tx.Exec(ctx,
				`UPDATE job_applications SET ranking = $1, skill_match_percentage = $2 WHERE id = $3 AND job_id = $4`,
				it.Ranking, it.SkillMatchPercentage, it.ID, app.JobID,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return job.Application{}, ErrApplicationExists
		case postgres.IsForeignKeyViolation(err):
			return job.Application{}, ErrMissingReference
		}
		return job.Application{}, err
	}
	return saved, nil
}
