package handler

import (
	"errors"

	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/delivery/http/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type errorMapping struct {
	target error
	status int
}

var usecaseErrors = []errorMapping{
	{usecase.ErrInvalidInput, fiber.StatusBadRequest},
	{usecase.ErrUserNotFound, fiber.StatusNotFound},
	{usecase.ErrSkillNotFound, fiber.StatusNotFound},
	{usecase.ErrUserSkillNotFound, fiber.StatusNotFound},
	{usecase.ErrRoleNotFound, fiber.StatusNotFound},
	{usecase.ErrJobNotFound, fiber.StatusNotFound},
	{usecase.ErrEmailTaken, fiber.StatusConflict},
	{usecase.ErrSkillExists, fiber.StatusConflict},
	{usecase.ErrUserSkillExists, fiber.StatusConflict},
	{usecase.ErrRoleExists, fiber.StatusConflict},
	{usecase.ErrAlreadyApplied, fiber.StatusConflict},
	{usecase.ErrJobClosed, fiber.StatusConflict},
	{usecase.ErrAssessmentCooldown, fiber.StatusTooManyRequests},
	{usecase.ErrAssessmentInProgress, fiber.StatusTooManyRequests},
	{usecase.ErrNoAssessmentItems, fiber.StatusUnprocessableEntity},
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	for _, m := range usecaseErrors {
		if errors.Is(err, m.target) {
			return middleware.NewAppError(m.status, m.target.Error(), nil, err)
		}
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
}

func paramUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, badRequest(err)
	}
	return id, nil
}
