package repository

import (
	"context"
	"fmt"

	"lexmatch-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CaseRepository handles database operations for cases
type CaseRepository struct {
	db *pgxpool.Pool
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{db: db}
}

// Create creates a new case
func (r *CaseRepository) Create(ctx context.Context, c *models.Case) error {
	query := `
		INSERT INTO cases (
			user_id, status, description, role, case_type, analysis
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		c.UserID,
		c.Status,
		c.Description,
		c.Role,
		c.CaseType,
		c.Analysis,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	return err
}

// GetByID retrieves a case by ID
func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	c := &models.Case{}
	query := `
		SELECT id, user_id, status, description, role, case_type, analysis,
			created_at, updated_at, closed_at
		FROM cases
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.UserID,
		&c.Status,
		&c.Description,
		&c.Role,
		&c.CaseType,
		&c.Analysis,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.ClosedAt,
	)

	if err != nil {
		return nil, err
	}

	return c, nil
}

// Update updates a case
func (r *CaseRepository) Update(ctx context.Context, c *models.Case) error {
	query := `
		UPDATE cases SET
			status = $2,
			description = $3,
			role = $4,
			case_type = $5,
			analysis = $6,
			closed_at = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		c.ID,
		c.Status,
		c.Description,
		c.Role,
		c.CaseType,
		c.Analysis,
		c.ClosedAt,
	).Scan(&c.UpdatedAt)

	return err
}

// ListByUserID retrieves all cases for a user
func (r *CaseRepository) ListByUserID(ctx context.Context, userID uuid.UUID, status *models.CaseStatus, limit, offset int) ([]*models.Case, error) {
	query := `
		SELECT id, user_id, status, description, role, case_type, analysis,
			created_at, updated_at, closed_at
		FROM cases
		WHERE user_id = $1`

	args := []interface{}{userID}
	argIndex := 2

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*models.Case
	for rows.Next() {
		c := &models.Case{}
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Status,
			&c.Description,
			&c.Role,
			&c.CaseType,
			&c.Analysis,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.ClosedAt,
		)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	return cases, rows.Err()
}

// Delete deletes a case
func (r *CaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cases WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
