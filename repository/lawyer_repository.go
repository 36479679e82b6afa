package repository

import (
	"context"

	"lexmatch-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LawyerRepository handles database operations for lawyers
type LawyerRepository struct {
	db *pgxpool.Pool
}

// NewLawyerRepository creates a new lawyer repository
func NewLawyerRepository(db *pgxpool.Pool) *LawyerRepository {
	return &LawyerRepository{db: db}
}

const lawyerColumns = `
	id, name, bar_number, years_of_practice, location, city, state,
	practice_areas, courts, languages, consultation_fee, fee_min, fee_max,
	availability, verified, active, email, phone,
	rating, total_cases, success_rate, created_at, updated_at`

// Create creates a new lawyer
func (r *LawyerRepository) Create(ctx context.Context, lawyer *models.Lawyer) error {
	query := `
		INSERT INTO lawyers (
			name, bar_number, years_of_practice, location, city, state,
			practice_areas, courts, languages, consultation_fee, fee_min, fee_max,
			availability, verified, active, email, phone,
			rating, total_cases, success_rate
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		lawyer.Name,
		lawyer.BarNumber,
		lawyer.YearsOfPractice,
		lawyer.Location,
		lawyer.City,
		lawyer.State,
		lawyer.PracticeAreas,
		lawyer.Courts,
		lawyer.Languages,
		lawyer.ConsultationFee,
		lawyer.FeeMin,
		lawyer.FeeMax,
		lawyer.Availability,
		lawyer.Verified,
		lawyer.Active,
		lawyer.Email,
		lawyer.Phone,
		lawyer.Rating,
		lawyer.TotalCases,
		lawyer.SuccessRate,
	).Scan(&lawyer.ID, &lawyer.CreatedAt, &lawyer.UpdatedAt)

	return err
}

func scanLawyer(row pgx.Row, lawyer *models.Lawyer) error {
	return row.Scan(
		&lawyer.ID,
		&lawyer.Name,
		&lawyer.BarNumber,
		&lawyer.YearsOfPractice,
		&lawyer.Location,
		&lawyer.City,
		&lawyer.State,
		&lawyer.PracticeAreas,
		&lawyer.Courts,
		&lawyer.Languages,
		&lawyer.ConsultationFee,
		&lawyer.FeeMin,
		&lawyer.FeeMax,
		&lawyer.Availability,
		&lawyer.Verified,
		&lawyer.Active,
		&lawyer.Email,
		&lawyer.Phone,
		&lawyer.Rating,
		&lawyer.TotalCases,
		&lawyer.SuccessRate,
		&lawyer.CreatedAt,
		&lawyer.UpdatedAt,
	)
}

// GetByID retrieves a lawyer by ID
func (r *LawyerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lawyer, error) {
	lawyer := &models.Lawyer{}
	query := `SELECT ` + lawyerColumns + ` FROM lawyers WHERE id = $1`

	if err := scanLawyer(r.db.QueryRow(ctx, query, id), lawyer); err != nil {
		return nil, err
	}

	return lawyer, nil
}

// Update updates a lawyer
func (r *LawyerRepository) Update(ctx context.Context, lawyer *models.Lawyer) error {
	query := `
		UPDATE lawyers SET
			name = $2,
			bar_number = $3,
			years_of_practice = $4,
			location = $5,
			city = $6,
			state = $7,
			practice_areas = $8,
			courts = $9,
			languages = $10,
			consultation_fee = $11,
			fee_min = $12,
			fee_max = $13,
			availability = $14,
			verified = $15,
			active = $16,
			email = $17,
			phone = $18,
			rating = $19,
			total_cases = $20,
			success_rate = $21,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		lawyer.ID,
		lawyer.Name,
		lawyer.BarNumber,
		lawyer.YearsOfPractice,
		lawyer.Location,
		lawyer.City,
		lawyer.State,
		lawyer.PracticeAreas,
		lawyer.Courts,
		lawyer.Languages,
		lawyer.ConsultationFee,
		lawyer.FeeMin,
		lawyer.FeeMax,
		lawyer.Availability,
		lawyer.Verified,
		lawyer.Active,
		lawyer.Email,
		lawyer.Phone,
		lawyer.Rating,
		lawyer.TotalCases,
		lawyer.SuccessRate,
	).Scan(&lawyer.UpdatedAt)

	return err
}

// SetActive toggles a lawyer's activation state
func (r *LawyerRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE lawyers SET active = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, active)
	return err
}

// List retrieves lawyers, optionally restricted to active ones
func (r *LawyerRepository) List(ctx context.Context, onlyActive bool) ([]models.Lawyer, error) {
	query := `SELECT ` + lawyerColumns + ` FROM lawyers`
	if onlyActive {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lawyers []models.Lawyer
	for rows.Next() {
		var lawyer models.Lawyer
		if err := scanLawyer(rows, &lawyer); err != nil {
			return nil, err
		}
		lawyers = append(lawyers, lawyer)
	}

	return lawyers, rows.Err()
}

// ListActive retrieves the active lawyer pool for matching
func (r *LawyerRepository) ListActive(ctx context.Context) ([]models.Lawyer, error) {
	return r.List(ctx, true)
}

// Delete deletes a lawyer
func (r *LawyerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM lawyers WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
