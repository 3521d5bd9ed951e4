package seeder

import (
	"context"
	"fmt"

	"talentbridge/internal/database"

	"go.uber.org/zap"
)

// Runner applies seeders in order. Seeders only insert rows that are not
// there yet, so running them on every start is safe.
type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		n, err := s.Run(ctx, db)
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Info("seeder finished", zap.String("seeder", s.Name()), zap.Int("inserted", n))
	}
	return nil
}
