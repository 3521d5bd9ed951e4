package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"talentbridge/internal/database"
	pg "talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository runs prepared statements through the database/sql view of
// the pool.
type UserRepository struct {
	db *sql.DB

	stmtCreate  *sql.Stmt
	stmtGetByID *sql.Stmt
}

func NewUserRepository(ctx context.Context, db database.DB) (*UserRepository, error) {
	if db == nil || db.SQLDB() == nil {
		return nil, database.ErrNilDB
	}
	r := &UserRepository{db: db.SQLDB()}

	var err error
	r.stmtCreate, err = r.db.PrepareContext(ctx,
		`INSERT INTO users (id, name, email, experience_years)
		 VALUES ($1, $2, NULLIF($3, ''), $4)
		 RETURNING created_at`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByID, err = r.db.PrepareContext(ctx,
		`SELECT id, name, COALESCE(email, ''), experience_years, created_at FROM users WHERE id = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)

	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	err := r.stmtCreate.QueryRowContext(ctx, u.ID.String(), u.Name, u.Email, u.ExperienceYears).Scan(&u.CreatedAt)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.stmtGetByID.QueryRowContext(ctx, id.String())
	return scanUser(row)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.User, error) {
	out := make(map[uuid.UUID]user.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(email, ''), experience_years, created_at
		 FROM users
		 WHERE id = ANY($1::uuid[])`,
		keys,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	var id string
	if err := row.Scan(&id, &u.Name, &u.Email, &u.ExperienceYears, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return user.User{}, err
	}
	u.ID = parsed
	return u, nil
}
