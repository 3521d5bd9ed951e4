package career

import (
	"errors"

	"talentbridge/internal/domain/skill"

	"github.com/google/uuid"
)

var ErrRoleNotFound = errors.New("role not found")

// PathNode is one role in a career path tree. Cycle marks a role that already
// appears higher up on the same path; such nodes are never expanded.
type PathNode struct {
	RoleID       uuid.UUID           `json:"role_id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Requirements []skill.Requirement `json:"requirements"`
	Children     []*PathNode         `json:"children"`
	Cycle        bool                `json:"cycle,omitempty"`
}

// BuildPath expands the progression graph from start. A node is expanded
// while remaining depth is above zero, so maxDepth=2 yields three levels.
// Edges to unknown roles are dropped.
func BuildPath(start uuid.UUID, roles []Role, maxDepth int) (*PathNode, error) {
	byID := indexRoles(roles)
	root, ok := byID[start]
	if !ok {
		return nil, ErrRoleNotFound
	}
	if maxDepth < 0 {
		maxDepth = 0
	}

	onPath := map[uuid.UUID]bool{}
	return buildNode(root, byID, maxDepth, onPath), nil
}

func buildNode(r Role, byID map[uuid.UUID]Role, depth int, onPath map[uuid.UUID]bool) *PathNode {
	node := &PathNode{
		RoleID:       r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Children:     make([]*PathNode, 0),
	}
	if depth <= 0 {
		return node
	}

	onPath[r.ID] = true
	defer delete(onPath, r.ID)

	for _, nextID := range r.NextRoles {
		next, ok := byID[nextID]
		if !ok {
			continue
		}
		if onPath[nextID] {
			node.Children = append(node.Children, &PathNode{
				RoleID:       next.ID,
				Title:        next.Title,
				Description:  next.Description,
				Requirements: next.Requirements,
				Children:     make([]*PathNode, 0),
				Cycle:        true,
			})
			continue
		}
		node.Children = append(node.Children, buildNode(next, byID, depth-1, onPath))
	}
	return node
}

// Depth is the number of levels below n.
func (n *PathNode) Depth() int {
	if n == nil {
		return 0
	}
	d := 0
	for _, c := range n.Children {
		if cd := c.Depth() + 1; cd > d {
			d = cd
		}
	}
	return d
}

// Count is the number of nodes in the tree, cycle markers included.
func (n *PathNode) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
