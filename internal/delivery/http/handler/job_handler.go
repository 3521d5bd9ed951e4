package handler

import (
	"talentbridge/internal/delivery/http/dto"
	"talentbridge/internal/delivery/http/response"
	"talentbridge/internal/domain/ranking"
	"talentbridge/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs", h.Create)
	r.Post("/jobs/:jobID/applications", h.Apply)
	r.Get("/jobs/:jobID/candidates", h.Candidates)
	r.Get("/users/:userID/jobs/:jobID/match", h.Match)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.CreateJob(c.Context(), req.Input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewJobResponse(created))
}

func (h *JobHandler) Match(c fiber.Ctx) error {
	userID, err := paramUUID(c, "userID")
	if err != nil {
		return err
	}
	jobID, err := paramUUID(c, "jobID")
	if err != nil {
		return err
	}

	report, err := h.uc.MatchJob(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobMatchResponse{
		JobID: report.Job.ID,
		Title: report.Job.Title,
		Match: report.Match,
	})
}

func (h *JobHandler) Apply(c fiber.Ctx) error {
	jobID, err := paramUUID(c, "jobID")
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	res, err := h.uc.Apply(c.Context(), jobID, req.CandidateID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewApplicationResponse(res))
}

func (h *JobHandler) Candidates(c fiber.Ctx) error {
	jobID, err := paramUUID(c, "jobID")
	if err != nil {
		return err
	}

	ranked, err := h.uc.RankCandidates(c.Context(), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	if ranked == nil {
		ranked = []ranking.Ranked{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ranked)
}
