// Package store wires the PostgreSQL connection, applies migrations, and
// hands out entity repositories bound to it.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mswiatek/scholarfolio/internal/server/migrations"
	"github.com/mswiatek/scholarfolio/internal/server/repositories/portfolio"
	"github.com/mswiatek/scholarfolio/internal/server/repositories/refreshtokens"
	"github.com/mswiatek/scholarfolio/internal/server/repositories/userprofiles"
	"github.com/mswiatek/scholarfolio/internal/server/repositories/users"
)

// PostgresManager owns the database handle and constructs repositories
// over it. Repositories accept a dbx.DBTX so services can also bind them
// to a transaction.
type PostgresManager struct {
	db *sql.DB
}

// NewPostgresManager opens the database, verifies connectivity, and applies
// embedded goose migrations.
func NewPostgresManager(ctx context.Context, dsn string) (*PostgresManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &PostgresManager{db: db}, nil
}

func (m *PostgresManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresManager) Close() error {
	return m.db.Close()
}

func (m *PostgresManager) Users() users.Repository {
	return users.NewPostgresRepository(m.db)
}

func (m *PostgresManager) RefreshTokens() refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(m.db)
}

func (m *PostgresManager) Portfolio() portfolio.Repository {
	return portfolio.NewPostgresRepository(m.db)
}

func (m *PostgresManager) UserProfiles() userprofiles.Repository {
	return userprofiles.NewPostgresRepository(m.db)
}
