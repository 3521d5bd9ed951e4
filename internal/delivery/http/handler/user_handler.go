package handler

import (
	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/response"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/users")
	grp.Post("/", h.Create)
	grp.Get("/:userID", h.Get)
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.CreateUser(c.Context(), usecase.CreateUserInput{
		Name:            req.Name,
		Email:           req.Email,
		ExperienceYears: req.ExperienceYears,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewUserResponse(created))
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := paramUUID(c, "userID")
	if err != nil {
		return err
	}

	u, err := h.uc.GetUser(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(u))
}
