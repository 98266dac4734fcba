package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusekai/platform-api/internal/domain"
)

// OrganizationRepository defines persistence access for tenant organizations.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*domain.Organization, error)
	SubdomainTaken(ctx context.Context, subdomain string) (bool, error)
	GetInstitutionProfile(ctx context.Context, orgID string) (*domain.InstitutionProfile, error)
	UpsertInstitutionProfile(ctx context.Context, profile *domain.InstitutionProfile) error
}

type organizationRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository returns a Postgres-backed implementation.
func NewOrganizationRepository(pool *pgxpool.Pool) OrganizationRepository {
	return &organizationRepository{pool: pool}
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	const query = `
        INSERT INTO organizations (name, subdomain, address, phone, email, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		org.Name,
		org.Subdomain,
		org.Address,
		org.Phone,
		org.Email,
		org.IsActive,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	const query = `
        SELECT id, name, subdomain, address, phone, email, is_active, created_at, updated_at
        FROM organizations WHERE id=$1`

	return r.scanOrganization(r.pool.QueryRow(ctx, query, id))
}

func (r *organizationRepository) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Organization, error) {
	const query = `
        SELECT id, name, subdomain, address, phone, email, is_active, created_at, updated_at
        FROM organizations WHERE subdomain=$1`

	return r.scanOrganization(r.pool.QueryRow(ctx, query, subdomain))
}

func (r *organizationRepository) SubdomainTaken(ctx context.Context, subdomain string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM organizations WHERE subdomain=$1)`

	var taken bool
	if err := r.pool.QueryRow(ctx, query, subdomain).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *organizationRepository) GetInstitutionProfile(ctx context.Context, orgID string) (*domain.InstitutionProfile, error) {
	const query = `
        SELECT id, organization_id, display_name, motto, address, phone, email, website, established_at, updated_at
        FROM institution_profiles WHERE organization_id=$1`

	var p domain.InstitutionProfile
	if err := r.pool.QueryRow(ctx, query, orgID).Scan(
		&p.ID,
		&p.OrganizationID,
		&p.DisplayName,
		&p.Motto,
		&p.Address,
		&p.Phone,
		&p.Email,
		&p.Website,
		&p.EstablishedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *organizationRepository) UpsertInstitutionProfile(ctx context.Context, profile *domain.InstitutionProfile) error {
	const query = `
        INSERT INTO institution_profiles (organization_id, display_name, motto, address, phone, email, website, established_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (organization_id) DO UPDATE SET
            display_name=EXCLUDED.display_name,
            motto=EXCLUDED.motto,
            address=EXCLUDED.address,
            phone=EXCLUDED.phone,
            email=EXCLUDED.email,
            website=EXCLUDED.website,
            established_at=EXCLUDED.established_at,
            updated_at=NOW()
        RETURNING id, updated_at`

	return r.pool.QueryRow(ctx, query,
		profile.OrganizationID,
		profile.DisplayName,
		profile.Motto,
		profile.Address,
		profile.Phone,
		profile.Email,
		profile.Website,
		profile.EstablishedAt,
	).Scan(&profile.ID, &profile.UpdatedAt)
}

func (r *organizationRepository) scanOrganization(row pgx.Row) (*domain.Organization, error) {
	var org domain.Organization
	if err := row.Scan(
		&org.ID,
		&org.Name,
		&org.Subdomain,
		&org.Address,
		&org.Phone,
		&org.Email,
		&org.IsActive,
		&org.CreatedAt,
		&org.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &org, nil
}
