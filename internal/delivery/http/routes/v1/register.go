package v1

import (
	"talentbridge/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Users      *handler.UserHandler
	Skills     *handler.SkillHandler
	UserSkills *handler.UserSkillHandler
	Roles      *handler.RoleHandler
	Jobs       *handler.JobHandler
}

// Register mounts every non-nil handler. Identity is taken from path
// parameters; there is no session layer in front of these routes.
func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Users != nil {
		h.Users.RegisterRoutes(r)
	}
	if h.Skills != nil {
		h.Skills.RegisterRoutes(r)
	}
	if h.UserSkills != nil {
		h.UserSkills.RegisterRoutes(r)
	}
	if h.Roles != nil {
		h.Roles.RegisterRoutes(r)
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(r)
	}
}
