package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusekai/platform-api/internal/domain"
)

// ProfileRepository defines persistence access for personal profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, orgID, id string) (*domain.Profile, error)
	GetByUserID(ctx context.Context, orgID, userID string) (*domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

const profileColumns = `id, organization_id, user_id, first_name, middle_name, last_name, email, phone, date_of_birth, gender, address, created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (organization_id, user_id, first_name, middle_name, last_name, email, phone, date_of_birth, gender, address)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.OrganizationID,
		profile.UserID,
		profile.FirstName,
		profile.MiddleName,
		profile.LastName,
		profile.Email,
		profile.Phone,
		profile.DateOfBirth,
		profile.Gender,
		profile.Address,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	const query = `
        UPDATE profiles SET first_name=$1, middle_name=$2, last_name=$3, email=$4,
            phone=$5, date_of_birth=$6, gender=$7, address=$8, updated_at=NOW()
        WHERE id=$9 AND organization_id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		profile.FirstName,
		profile.MiddleName,
		profile.LastName,
		profile.Email,
		profile.Phone,
		profile.DateOfBirth,
		profile.Gender,
		profile.Address,
		profile.ID,
		profile.OrganizationID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id=$1 AND organization_id=$2`
	return ScanProfile(r.pool.QueryRow(ctx, query, id, orgID))
}

func (r *profileRepository) GetByUserID(ctx context.Context, orgID, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id=$1 AND organization_id=$2`
	return ScanProfile(r.pool.QueryRow(ctx, query, userID, orgID))
}

// ScanProfile reads a profile row in the canonical column order.
func ScanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	if err := row.Scan(
		&p.ID,
		&p.OrganizationID,
		&p.UserID,
		&p.FirstName,
		&p.MiddleName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.DateOfBirth,
		&p.Gender,
		&p.Address,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
