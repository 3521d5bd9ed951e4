package handler

import (
	"strconv"

	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RoleHandler struct {
	uc usecase.RoleUsecase
}

func NewRoleHandler(uc usecase.RoleUsecase) *RoleHandler {
	return &RoleHandler{uc: uc}
}

func (h *RoleHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/roles", h.Create)
	r.Get("/roles/:roleID/career-path", h.CareerPath)
	r.Get("/users/:userID/roles/:roleID/gap", h.Gap)
	r.Get("/users/:userID/role-recommendations", h.Recommend)
}

func (h *RoleHandler) Create(c fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.CreateRole(c.Context(), req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewRoleResponse(created))
}

func (h *RoleHandler) Gap(c fiber.Ctx) error {
	userID, err := paramUUID(c, "userID")
	if err != nil {
		return err
	}
	roleID, err := paramUUID(c, "roleID")
	if err != nil {
		return err
	}

	report, err := h.uc.AnalyzeRoleGap(c.Context(), userID, roleID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRoleGapResponse(report))
}

func (h *RoleHandler) Recommend(c fiber.Ctx) error {
	userID, err := paramUUID(c, "userID")
	if err != nil {
		return err
	}

	recs, err := h.uc.RecommendRoles(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, recs)
}

func (h *RoleHandler) CareerPath(c fiber.Ctx) error {
	roleID, err := paramUUID(c, "roleID")
	if err != nil {
		return err
	}

	var depth *int
	if raw := c.Query("depth"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(err)
		}
		depth = &d
	}

	path, err := h.uc.CareerPath(c.Context(), roleID, depth)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCareerPathNode(path))
}
