package career

import (
	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

// Role is a node of the progression graph. NextRoles may form cycles.
type Role struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Category      string
	Industry      string
	AverageSalary int
	Requirements  []skill.Requirement
	NextRoles     []uuid.UUID
}

func indexRoles(roles []Role) map[uuid.UUID]Role {
	out := make(map[uuid.UUID]Role, len(roles))
	for _, r := range roles {
		if r.ID == uuid.Nil {
			continue
		}
		out[r.ID] = r
	}
	return out
}
