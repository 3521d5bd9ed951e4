package repository

import (
	"context"
	"strings"

	"talentbridge/internal/database"
	"talentbridge/internal/database/postgres"
	"talentbridge/internal/domain/career"
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

type RoleRepository interface {
	ListRoles(ctx context.Context) ([]career.Role, error)
	GetRole(ctx context.Context, id uuid.UUID) (career.Role, error)
	CreateRole(ctx context.Context, role career.Role) (career.Role, error)
}

type PostgresRoleRepository struct {
	db database.DB
}

func NewPostgresRoleRepository(db database.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

// ListRoles loads the whole progression graph: every role with its
// requirements and outgoing edges in their stored order.
func (r *PostgresRoleRepository) ListRoles(ctx context.Context) ([]career.Role, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, category, industry, average_salary
		 FROM roles
		 ORDER BY title ASC`,
	)
	if err != nil {
		return nil, err
	}
	roles, err := scanRoles(rows)
	if err != nil {
		return nil, err
	}

	reqRows, err := r.db.Query(ctx,
		`SELECT rr.role_id, rr.skill_id, COALESCE(s.name, ''), rr.minimum_sci, 0
		 FROM role_requirements rr
		 LEFT JOIN skills s ON s.id = rr.skill_id
		 ORDER BY rr.role_id, rr.position ASC`,
	)
	if err != nil {
		return nil, err
	}
	reqs, err := scanRequirements(reqRows)
	if err != nil {
		return nil, err
	}

	edgeRows, err := r.db.Query(ctx,
		`SELECT from_role_id, to_role_id FROM role_edges ORDER BY from_role_id, position ASC`,
	)
	if err != nil {
		return nil, err
	}
	edges, err := scanEdges(edgeRows)
	if err != nil {
		return nil, err
	}

	for i := range roles {
		roles[i].Requirements = nonNilRequirements(reqs[roles[i].ID])
		roles[i].NextRoles = nonNilIDs(edges[roles[i].ID])
	}
	return roles, nil
}

func (r *PostgresRoleRepository) GetRole(ctx context.Context, id uuid.UUID) (career.Role, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, description, category, industry, average_salary FROM roles WHERE id = $1`,
		id,
	)
	if err != nil {
		return career.Role{}, err
	}
	roles, err := scanRoles(rows)
	if err != nil {
		return career.Role{}, err
	}
	if len(roles) == 0 {
		return career.Role{}, ErrRoleNotFound
	}
	role := roles[0]

	reqRows, err := r.db.Query(ctx,
		`SELECT rr.role_id, rr.skill_id, COALESCE(s.name, ''), rr.minimum_sci, 0
		 FROM role_requirements rr
		 LEFT JOIN skills s ON s.id = rr.skill_id
		 WHERE rr.role_id = $1
		 ORDER BY rr.position ASC`,
		id,
	)
	if err != nil {
		return career.Role{}, err
	}
	reqs, err := scanRequirements(reqRows)
	if err != nil {
		return career.Role{}, err
	}

	edgeRows, err := r.db.Query(ctx,
		`SELECT from_role_id, to_role_id FROM role_edges WHERE from_role_id = $1 ORDER BY position ASC`,
		id,
	)
	if err != nil {
		return career.Role{}, err
	}
	edges, err := scanEdges(edgeRows)
	if err != nil {
		return career.Role{}, err
	}

	role.Requirements = nonNilRequirements(reqs[id])
	role.NextRoles = nonNilIDs(edges[id])
	return role, nil
}

func (r *PostgresRoleRepository) CreateRole(ctx context.Context, role career.Role) (career.Role, error) {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	role.Title = strings.TrimSpace(role.Title)

	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO roles (id, title, description, category, industry, average_salary)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			role.ID, role.Title, role.Description, role.Category, role.Industry, role.AverageSalary,
		)
		if err != nil {
			return err
		}
		for i, req := range role.Requirements {
			_, err := tx.Exec(ctx,
				`INSERT INTO role_requirements (role_id, skill_id, minimum_sci, position) VALUES ($1,$2,$3,$4)`,
				role.ID, req.Skill.ID, req.MinimumSCI, i,
			)
			if err != nil {
				return err
			}
		}
		for i, next := range role.NextRoles {
			_, err := tx.Exec(ctx,
				`INSERT INTO role_edges (from_role_id, to_role_id, position) VALUES ($1,$2,$3)`,
				role.ID, next, i,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return career.Role{}, ErrRoleExists
		}
		return career.Role{}, err
	}
	return role, nil
}

func scanRoles(rows database.Rows) ([]career.Role, error) {
	defer rows.Close()

	out := make([]career.Role, 0)
	for rows.Next() {
		var role career.Role
		if err := rows.Scan(&role.ID, &role.Title, &role.Description, &role.Category, &role.Industry, &role.AverageSalary); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanEdges(rows database.Rows) (map[uuid.UUID][]uuid.UUID, error) {
	defer rows.Close()

	out := map[uuid.UUID][]uuid.UUID{}
	for rows.Next() {
		var from, to uuid.UUID
		if err := rows.Scan(&from, &to); err != nil {
			return nil, err
		}
		out[from] = append(out[from], to)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nonNilRequirements(in []skill.Requirement) []skill.Requirement {
	if in == nil {
		return make([]skill.Requirement, 0)
	}
	return in
}

func nonNilIDs(in []uuid.UUID) []uuid.UUID {
	if in == nil {
		return make([]uuid.UUID, 0)
	}
	return in
}
