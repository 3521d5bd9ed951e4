package repository

import (
	"talentbridge/internal/database"
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

// scanRequirements reads (owner_id, skill_id, skill_name, minimum_sci,
// importance) rows grouped by owner, keeping row order.
func scanRequirements(rows database.Rows) (map[uuid.UUID][]skill.Requirement, error) {
	defer rows.Close()

	out := map[uuid.UUID][]skill.Requirement{}
	for rows.Next() {
		var owner, skillID uuid.UUID
		var name string
		var req skill.Requirement
		if err := rows.Scan(&owner, &skillID, &name, &req.MinimumSCI, &req.Importance); err != nil {
			return nil, err
		}
		req.Skill = skill.NewRef(skillID, name)
		out[owner] = append(out[owner], req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
