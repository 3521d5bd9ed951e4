package dto

import (
	"talentbridge/internal/domain/career"
	"talentbridge/internal/domain/gap"
	"talentbridge/internal/usecase"

	"github.com/google/uuid"
)

type CreateRoleRequest struct {
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	Industry      string               `json:"industry"`
	AverageSalary int                  `json:"average_salary"`
	Requirements  []RequirementPayload `json:"requirements"`
	NextRoles     []uuid.UUID          `json:"next_roles"`
}

func (r CreateRoleRequest) Input() usecase.CreateRoleInput {
	return usecase.CreateRoleInput{
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		Industry:      r.Industry,
		AverageSalary: r.AverageSalary,
		Requirements:  RequirementInputs(r.Requirements),
		NextRoles:     r.NextRoles,
	}
}

func RequirementInputs(in []RequirementPayload) []usecase.RequirementInput {
	out := make([]usecase.RequirementInput, 0, len(in))
	for _, r := range in {
		out = append(out, usecase.RequirementInput{
			SkillID:    r.SkillID,
			MinimumSCI: r.MinimumSCI,
			Importance: r.Importance,
		})
	}
	return out
}

type RoleResponse struct {
	ID            uuid.UUID            `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	Industry      string               `json:"industry"`
	AverageSalary int                  `json:"average_salary"`
	Requirements  []RequirementPayload `json:"requirements"`
	NextRoles     []uuid.UUID          `json:"next_roles"`
}

func NewRoleResponse(r career.Role) RoleResponse {
	next := r.NextRoles
	if next == nil {
		next = []uuid.UUID{}
	}
	return RoleResponse{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		Industry:      r.Industry,
		AverageSalary: r.AverageSalary,
		Requirements:  NewRequirementPayloads(r.Requirements),
		NextRoles:     next,
	}
}

type RoleGapResponse struct {
	Role            RoleResponse         `json:"role"`
	Analysis        gap.Result           `json:"analysis"`
	Recommendations []gap.Recommendation `json:"recommendations"`
}

func NewRoleGapResponse(r usecase.RoleGapReport) RoleGapResponse {
	recs := r.Recommendations
	if recs == nil {
		recs = []gap.Recommendation{}
	}
	return RoleGapResponse{
		Role:            NewRoleResponse(r.Role),
		Analysis:        r.Analysis,
		Recommendations: recs,
	}
}

type CareerPathNode struct {
	RoleID       uuid.UUID            `json:"role_id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Requirements []RequirementPayload `json:"requirements"`
	Cycle        bool                 `json:"cycle,omitempty"`
	Children     []CareerPathNode     `json:"children"`
}

func NewCareerPathNode(n *career.PathNode) CareerPathNode {
	out := CareerPathNode{
		RoleID:       n.RoleID,
		Title:        n.Title,
		Description:  n.Description,
		Requirements: NewRequirementPayloads(n.Requirements),
		Cycle:        n.Cycle,
		Children:     make([]CareerPathNode, 0, len(n.Children)),
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, NewCareerPathNode(c))
	}
	return out
}
