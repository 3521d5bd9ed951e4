package app

import (
	"fmt"
	"strings"

	"talentbridge/internal/config"
	"talentbridge/internal/delivery/http/handler"
	"talentbridge/internal/delivery/http/middleware"
	"talentbridge/internal/delivery/http/routes"
	v1 "talentbridge/internal/delivery/http/routes/v1"
	"talentbridge/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP surface over an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	uc := c.Usecases
	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		v1.Handlers{
			Users:      handler.NewUserHandler(uc.Users),
			Skills:     handler.NewSkillHandler(uc.Skills),
			UserSkills: handler.NewUserSkillHandler(uc.UserSkills),
			Roles:      handler.NewRoleHandler(uc.Roles),
			Jobs:       handler.NewJobHandler(uc.Jobs),
		},
		ws.NewHandler(c.Hub, c.Logger.Named("ws")),
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
