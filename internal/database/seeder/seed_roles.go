package seeder

import (
	"context"
	"fmt"

	"talentbridge/internal/database"

	"github.com/google/uuid"
)

type RequirementSeed struct {
	Skill      string
	MinimumSCI float64
}

type RoleSeed struct {
	Title        string
	Description  string
	Category     string
	Industry     string
	Salary       int
	Requirements []RequirementSeed
	Next         []string
}

var defaultRoles = []RoleSeed{
	{
		Title: "Junior Backend Engineer", Description: "Builds and maintains service endpoints",
		Category: "Engineering", Industry: "Software", Salary: 60000,
		Requirements: []RequirementSeed{{"Go", 50}, {"PostgreSQL", 40}},
		Next:         []string{"Backend Engineer"},
	},
	{
		Title: "Backend Engineer", Description: "Owns services end to end",
		Category: "Engineering", Industry: "Software", Salary: 90000,
		Requirements: []RequirementSeed{{"Go", 70}, {"PostgreSQL", 60}, {"Redis", 50}, {"Docker", 50}},
		Next:         []string{"Senior Backend Engineer"},
	},
	{
		Title: "Senior Backend Engineer", Description: "Leads the design of backend systems",
		Category: "Engineering", Industry: "Software", Salary: 130000,
		Requirements: []RequirementSeed{{"Go", 85}, {"PostgreSQL", 75}, {"System Design", 70}, {"Kubernetes", 60}, {"Mentoring", 50}},
		Next:         []string{"Staff Engineer", "Engineering Manager"},
	},
	{
		Title: "Staff Engineer", Description: "Sets technical direction across teams",
		Category: "Engineering", Industry: "Software", Salary: 170000,
		Requirements: []RequirementSeed{{"System Design", 85}, {"Go", 85}, {"Communication", 75}},
	},
	{
		Title: "Engineering Manager", Description: "Runs a team of engineers",
		Category: "Management", Industry: "Software", Salary: 160000,
		Requirements: []RequirementSeed{{"Communication", 80}, {"Mentoring", 80}, {"System Design", 60}},
	},
	{
		Title: "Frontend Engineer", Description: "Builds web interfaces",
		Category: "Engineering", Industry: "Software", Salary: 85000,
		Requirements: []RequirementSeed{{"TypeScript", 70}, {"React", 70}, {"JavaScript", 60}},
		Next:         []string{"Senior Backend Engineer"},
	},
}

// RolesSeeder inserts the career ladder. Requirements and edges are resolved
// by skill name and role title against what is in the database.
type RolesSeeder struct {
	Roles []RoleSeed
}

func (RolesSeeder) Name() string { return "roles" }

func (s RolesSeeder) Run(ctx context.Context, db database.DB) (int, error) {
	inserted := 0
	err := database.InTx(ctx, db, func(tx database.Tx) error {
		created := make(map[string]uuid.UUID, len(s.Roles))
		for _, r := range s.Roles {
			id := uuid.New()
			n, err := tx.Exec(ctx,
				`INSERT INTO roles (id, title, description, category, industry, average_salary)
				 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (title) DO NOTHING`,
				id, r.Title, r.Description, r.Category, r.Industry, r.Salary,
			)
			if err != nil {
				return fmt.Errorf("insert role %q: %w", r.Title, err)
			}
			if n > 0 {
				created[r.Title] = id
			}
		}
		inserted = len(created)
		if inserted == 0 {
			return nil
		}

		skills, err := lookupIDs(ctx, tx, `SELECT name, id FROM skills`)
		if err != nil {
			return err
		}
		roles, err := lookupIDs(ctx, tx, `SELECT title, id FROM roles`)
		if err != nil {
			return err
		}

		for _, r := range s.Roles {
			roleID, ok := created[r.Title]
			if !ok {
				continue
			}
			pos := 0
			for _, req := range r.Requirements {
				skillID, ok := skills[req.Skill]
				if !ok {
					continue
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO role_requirements (role_id, skill_id, minimum_sci, position) VALUES ($1, $2, $3, $4)`,
					roleID, skillID, req.MinimumSCI, pos,
				); err != nil {
					return fmt.Errorf("insert requirement %q of %q: %w", req.Skill, r.Title, err)
				}
				pos++
			}
			for i, next := range r.Next {
				nextID, ok := roles[next]
				if !ok {
					continue
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO role_edges (from_role_id, to_role_id, position) VALUES ($1, $2, $3)`,
					roleID, nextID, i,
				); err != nil {
					return fmt.Errorf("insert edge %q -> %q: %w", r.Title, next, err)
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

func lookupIDs(ctx context.Context, tx database.Tx, query string) (map[string]uuid.UUID, error) {
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]uuid.UUID)
	for rows.Next() {
		var (
			key string
			id  uuid.UUID
		)
		if err := rows.Scan(&key, &id); err != nil {
			return nil, err
		}
		out[key] = id
	}
	return out, rows.Err()
}
