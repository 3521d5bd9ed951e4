package handler

import (
	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/users/:userID/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Add)
	grp.Put("/:skillID/last-used", h.Touch)
	grp.Post("/:skillID/assessments", h.SubmitAssessment)
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	userID, err := paramUUID(c, "userID")
	if err != nil {
		return err
	}

	items, err := h.uc.ListUserSkills(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.UserSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewUserSkillResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserSkillHandler) Add(c fiber.Ctx) error {
	userID, err := paramUUID(c, "userID")
	if err != nil {
		return err
	}

	var req dto.AddUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.AddUserSkill(c.Context(), userID, usecase.AddUserSkillInput{
		SkillID:         req.SkillID,
		SelfRating:      req.SelfRating,
		LastUsedDate:    req.LastUsedDate,
		Tag:             req.Tag,
		AssessmentScore: req.AssessmentScore,
		ScenarioScore:   req.ScenarioScore,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewUserSkillResponse(created))
}

func (h *UserSkillHandler) Touch(c fiber.Ctx) error {
	userID, skillID, err := userSkillParams(c)
	if err != nil {
		return err
	}

	var req dto.TouchUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	updated, err := h.uc.TouchUserSkill(c.Context(), userID, skillID, req.LastUsedDate)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserSkillResponse(updated))
}

func (h *UserSkillHandler) SubmitAssessment(c fiber.Ctx) error {
	userID, skillID, err := userSkillParams(c)
	if err != nil {
		return err
	}

	var req dto.SubmitAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	updated, err := h.uc.SubmitAssessment(c.Context(), userID, skillID, usecase.SubmitAssessmentInput{
		Answers:         req.Answers,
		AssessmentScore: req.AssessmentScore,
		ScenarioScore:   req.ScenarioScore,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserSkillResponse(updated))
}

func userSkillParams(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := paramUUID(c, "userID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	skillID, err := paramUUID(c, "skillID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, skillID, nil
}
