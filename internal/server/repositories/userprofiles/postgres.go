package userprofiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mswiatek/scholarfolio/internal/dbx"
	"github.com/mswiatek/scholarfolio/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `SELECT user_id, name FROM user_profiles WHERE user_id = $1;`

	var p models.UserProfile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) Save(ctx context.Context, p *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET name = EXCLUDED.name;
	`
	if _, err := r.db.ExecContext(ctx, query, p.UserID, p.Name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
