package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentbridge/internal/config"
	"talentbridge/internal/database"
	"talentbridge/internal/database/migration"
	dbpostgres "talentbridge/internal/database/postgres"
	"talentbridge/internal/database/seeder"
	"talentbridge/internal/domain/confidence"
	"talentbridge/internal/domain/ranking"
	"talentbridge/internal/infrastructure/cache"
	"talentbridge/internal/infrastructure/persistence/postgres"
	"talentbridge/internal/repository"
	"talentbridge/internal/usecase"
	"talentbridge/internal/ws"

	"go.uber.org/zap"
)

const startupTimeout = 10 * time.Second

type Usecases struct {
	Users      usecase.UserUsecase
	Skills     usecase.SkillUsecase
	UserSkills usecase.UserSkillUsecase
	Roles      usecase.RoleUsecase
	Jobs       usecase.JobUsecase
}

// Container owns every long-lived dependency of the server process.
type Container struct {
	Config   config.Config
	Logger   *zap.Logger
	DB       database.DB
	Cache    *cache.Redis
	Users    *postgres.UserRepository
	Hub      *ws.Hub
	Usecases Usecases

	stopHub context.CancelFunc
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine, err := confidence.NewEngine(confidence.Weights{
		Assessment: cfg.Engine.WeightAssessment,
		Freshness:  cfg.Engine.WeightFreshness,
		Scenario:   cfg.Engine.WeightScenario,
	})
	if err != nil {
		return nil, fmt.Errorf("confidence weights: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: logger, DB: db}

	if cfg.Database.AutoMigrate {
		runner := migration.Runner{Logger: logger.Named("migration")}
		if err := runner.Run(ctx, db); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	if cfg.Database.Seed {
		runner := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger.Named("seeder")}
		if err := runner.Run(ctx, db); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.Users, err = postgres.NewUserRepository(ctx, db)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("prepare user repository: %w", err)
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, logger.Named("cache"))

	skills := repository.NewPostgresSkillRepository(db)
	profiles := repository.NewPostgresUserSkillRepository(db)
	roles := repository.NewPostgresRoleRepository(db)
	jobs := repository.NewPostgresJobRepository(db)

	c.Hub = ws.NewHub(logger.Named("ws"))
	hubCtx, stopHub := context.WithCancel(context.Background())
	c.stopHub = stopHub
	go c.Hub.Run(hubCtx)

	jobUsecase := usecase.NewJobUsecase(jobs, profiles, c.Users, ranking.NewRanker(cfg.Engine.RankingWorkers), logger)
	jobUsecase.SetNotifier(c.Hub)

	c.Usecases = Usecases{
		Users:      usecase.NewUserUsecase(c.Users, logger),
		Skills:     usecase.NewSkillUsecase(skills, logger),
		UserSkills: usecase.NewUserSkillUsecase(profiles, skills, engine, c.Cache, cfg.Engine.AssessmentCooldown, logger),
		Roles:      usecase.NewRoleUsecase(roles, profiles, c.Cache, cfg.Engine.CareerMaxDepth, cfg.Engine.CareerPathCacheTTL, logger),
		Jobs:       jobUsecase,
	}

	logger.Info("container ready",
		zap.Bool("cache_available", c.Cache.Available()),
		zap.Bool("auto_migrate", cfg.Database.AutoMigrate),
		zap.Bool("seed", cfg.Database.Seed),
	)
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	if c.stopHub != nil {
		c.stopHub()
	}

	var errs []error
	if c.Users != nil {
		errs = append(errs, c.Users.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
