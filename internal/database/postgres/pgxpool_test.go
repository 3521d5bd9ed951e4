package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"talentbridge/internal/config"
	"talentbridge/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost: " db ", DBPort: "5432", DBUser: "app", DBPassword: "s3cret", DBName: "talent", DBSSLMode: "disable",
	})

	assert.Equal(t, "host=db port=5432 user=app password=s3cret dbname=talent sslmode=disable", dsn)
}

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.True(t, IsNoRows(sql.ErrNoRows))
	assert.False(t, IsNoRows(nil))
}

func TestNilPool(t *testing.T) {
	var p *Pool

	assert.ErrorIs(t, p.Ping(context.Background()), database.ErrNilDB)
	_, err := p.Exec(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, database.ErrNilDB)
	assert.ErrorIs(t, p.QueryRow(context.Background(), "SELECT 1").Scan(), database.ErrNilDB)
	assert.NoError(t, p.Close())
}
