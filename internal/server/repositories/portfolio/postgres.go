package portfolio

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mswiatek/scholarfolio/internal/common"
	"github.com/mswiatek/scholarfolio/internal/dbx"
	"github.com/mswiatek/scholarfolio/internal/server/models"
)

// PostgresRepository implements portfolio storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetProfile(ctx context.Context) (*models.Profile, error) {
	query := `SELECT name, biography, photo_key FROM profile WHERE id = 1;`

	var p models.Profile
	err := r.db.QueryRowContext(ctx, query).Scan(&p.Name, &p.Biography, &p.PhotoKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) SetProfile(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profile (id, name, biography, photo_key)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, biography = EXCLUDED.biography, photo_key = EXCLUDED.photo_key;
	`
	if _, err := r.db.ExecContext(ctx, query, p.Name, p.Biography, p.PhotoKey); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	query := `SELECT email, affiliation FROM contact_info WHERE id = 1;`

	var c models.ContactInfo
	err := r.db.QueryRowContext(ctx, query).Scan(&c.Email, &c.Affiliation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

func (r *PostgresRepository) SetContactInfo(ctx context.Context, c *models.ContactInfo) error {
	query := `
		INSERT INTO contact_info (id, email, affiliation)
		VALUES (1, $1, $2)
		ON CONFLICT (id)
		DO UPDATE SET email = EXCLUDED.email, affiliation = EXCLUDED.affiliation;
	`
	if _, err := r.db.ExecContext(ctx, query, c.Email, c.Affiliation); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListInterests(ctx context.Context) ([]models.ResearchInterest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM research_interests;`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.ResearchInterest, 0)
	for rows.Next() {
		var i models.ResearchInterest
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		result = append(result, i)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) AddInterest(ctx context.Context, i *models.ResearchInterest) error {
	query := `INSERT INTO research_interests (id, name) VALUES ($1, $2);`
	if _, err := r.db.ExecContext(ctx, query, i.ID, i.Name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteInterest(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM research_interests WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListPublications(ctx context.Context) ([]models.Publication, error) {
	query := `SELECT id, title, description, link, pdf_key, created_at_unix FROM publications;`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Publication, 0)
	for rows.Next() {
		var p models.Publication
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Link, &p.PDFKey, &p.CreatedAtUnix); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) GetPublication(ctx context.Context, id string) (*models.Publication, error) {
	query := `SELECT id, title, description, link, pdf_key, created_at_unix FROM publications WHERE id = $1;`

	var p models.Publication
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &p.Description, &p.Link, &p.PDFKey, &p.CreatedAtUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) AddPublication(ctx context.Context, p *models.Publication) error {
	query := `
		INSERT INTO publications (id, title, description, link, pdf_key, created_at_unix)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Description, p.Link, p.PDFKey, p.CreatedAtUnix); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePublication(ctx context.Context, p *models.Publication) error {
	query := `
		UPDATE publications SET title = $2, description = $3, link = $4, pdf_key = $5 WHERE id = $1;
	`
	res, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Description, p.Link, p.PDFKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeletePublication(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM publications WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Clear wipes all portfolio content. When the repository is bound to a
// *sql.DB the deletes run in a single transaction; when it is already
// transaction-bound they run on that transaction.
func (r *PostgresRepository) Clear(ctx context.Context) error {
	if db, ok := r.db.(*sql.DB); ok {
		return dbx.WithTx(ctx, db, nil, clearTables)
	}
	return clearTables(ctx, r.db)
}

func clearTables(ctx context.Context, db dbx.DBTX) error {
	for _, query := range []string{
		`DELETE FROM profile;`,
		`DELETE FROM contact_info;`,
		`DELETE FROM research_interests;`,
		`DELETE FROM publications;`,
	} {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}
