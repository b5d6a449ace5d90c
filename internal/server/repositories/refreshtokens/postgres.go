package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mswiatek/scholarfolio/internal/common"
	"github.com/mswiatek/scholarfolio/internal/dbx"
	"github.com/mswiatek/scholarfolio/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, token *models.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, expires_at) VALUES ($1, $2, $3);
	`
	if _, err := r.db.ExecContext(ctx, query, token.ID, token.UserID, token.ExpiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, expires_at FROM refresh_tokens WHERE id = $1;
	`
	var t models.RefreshToken
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.UserID, &t.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
