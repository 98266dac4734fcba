package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusekai/platform-api/internal/domain"
)

// RoleRepository defines persistence access for roles, permissions and
// role assignments within a tenant.
type RoleRepository interface {
	Create(ctx context.Context, orgID string, role *domain.Role, permissionIDs []string) error
	Update(ctx context.Context, orgID string, role *domain.Role, permissionIDs []string) error
	Delete(ctx context.Context, orgID, roleID string) error
	GetByID(ctx context.Context, orgID, roleID string) (*domain.Role, error)
	GetBySlug(ctx context.Context, orgID, slug string) (*domain.Role, error)
	List(ctx context.Context, orgID string) ([]*domain.Role, error)
	SlugTaken(ctx context.Context, orgID, slug string) (bool, error)

	SlugsForUser(ctx context.Context, orgID, userID string) ([]string, error)
	CodenamesForSlug(ctx context.Context, orgID, slug string) ([]string, error)
	AssignRole(ctx context.Context, orgID, userID, roleID string) error

	ListPermissions(ctx context.Context) ([]*domain.Permission, error)
	PermissionIDsByCodename(ctx context.Context, codenames []string) ([]string, error)
	SeedPermissions(ctx context.Context, perms []*domain.Permission) error
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) Create(ctx context.Context, orgID string, role *domain.Role, permissionIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO roles (organization_id, name, slug, description, is_system_role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, query,
		orgID,
		role.Name,
		role.Slug,
		role.Description,
		role.IsSystemRole,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return err
	}

	if err := replacePermissions(ctx, tx, role.ID, permissionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *roleRepository) Update(ctx context.Context, orgID string, role *domain.Role, permissionIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE roles SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3 AND organization_id=$4`

	cmd, err := tx.Exec(ctx, query, role.Name, role.Description, role.ID, orgID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := replacePermissions(ctx, tx, role.ID, permissionIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func replacePermissions(ctx context.Context, tx pgx.Tx, roleID string, permissionIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id=$1`, roleID); err != nil {
		return err
	}
	for _, pid := range permissionIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
			roleID, pid,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, orgID, roleID string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM roles WHERE id=$1 AND organization_id=$2`, roleID, orgID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, orgID, roleID string) (*domain.Role, error) {
	const query = `
        SELECT id, name, slug, description, is_system_role, created_at, updated_at
        FROM roles WHERE id=$1 AND organization_id=$2`

	return r.getRole(ctx, r.pool.QueryRow(ctx, query, roleID, orgID))
}

func (r *roleRepository) GetBySlug(ctx context.Context, orgID, slug string) (*domain.Role, error) {
	const query = `
        SELECT id, name, slug, description, is_system_role, created_at, updated_at
        FROM roles WHERE slug=$1 AND organization_id=$2`

	return r.getRole(ctx, r.pool.QueryRow(ctx, query, slug, orgID))
}

func (r *roleRepository) getRole(ctx context.Context, row pgx.Row) (*domain.Role, error) {
	var role domain.Role
	if err := row.Scan(
		&role.ID,
		&role.Name,
		&role.Slug,
		&role.Description,
		&role.IsSystemRole,
		&role.CreatedAt,
		&role.UpdatedAt,
	); err != nil {
		return nil, err
	}

	perms, err := r.permissionsForRole(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	role.Permissions = perms
	return &role, nil
}

func (r *roleRepository) permissionsForRole(ctx context.Context, roleID string) ([]domain.Permission, error) {
	const query = `
        SELECT p.id, p.codename, p.name, p.module, p.description
        FROM permissions p
        JOIN role_permissions rp ON rp.permission_id = p.id
        WHERE rp.role_id=$1
        ORDER BY p.module, p.name`

	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []domain.Permission
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.ID, &p.Codename, &p.Name, &p.Module, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// List returns roles with active member counts, system roles first.
func (r *roleRepository) List(ctx context.Context, orgID string) ([]*domain.Role, error) {
	const query = `
        SELECT r.id, r.name, r.slug, r.description, r.is_system_role, r.created_at, r.updated_at,
            (SELECT COUNT(*) FROM user_roles ur WHERE ur.role_id=r.id AND ur.is_active) AS member_count
        FROM roles r
        WHERE r.organization_id=$1
        ORDER BY r.is_system_role DESC, r.name`

	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.Slug,
			&role.Description,
			&role.IsSystemRole,
			&role.CreatedAt,
			&role.UpdatedAt,
			&role.MemberCount,
		); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, role := range roles {
		perms, err := r.permissionsForRole(ctx, role.ID)
		if err != nil {
			return nil, err
		}
		role.Permissions = perms
	}
	return roles, nil
}

func (r *roleRepository) SlugTaken(ctx context.Context, orgID, slug string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM roles WHERE organization_id=$1 AND slug=$2)`

	var taken bool
	if err := r.pool.QueryRow(ctx, query, orgID, slug).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *roleRepository) SlugsForUser(ctx context.Context, orgID, userID string) ([]string, error) {
	const query = `
        SELECT r.slug
        FROM user_roles ur
        JOIN roles r ON r.id = ur.role_id
        WHERE ur.organization_id=$1 AND ur.user_id=$2 AND ur.is_active
        ORDER BY r.is_system_role DESC, r.slug`

	rows, err := r.pool.Query(ctx, query, orgID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

func (r *roleRepository) CodenamesForSlug(ctx context.Context, orgID, slug string) ([]string, error) {
	const query = `
        SELECT p.codename
        FROM roles r
        JOIN role_permissions rp ON rp.role_id = r.id
        JOIN permissions p ON p.id = rp.permission_id
        WHERE r.organization_id=$1 AND r.slug=$2
        ORDER BY p.codename`

	rows, err := r.pool.Query(ctx, query, orgID, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codenames []string
	for rows.Next() {
		var codename string
		if err := rows.Scan(&codename); err != nil {
			return nil, err
		}
		codenames = append(codenames, codename)
	}
	return codenames, rows.Err()
}

func (r *roleRepository) AssignRole(ctx context.Context, orgID, userID, roleID string) error {
	const query = `
        INSERT INTO user_roles (organization_id, user_id, role_id, is_active)
        VALUES ($1, $2, $3, TRUE)
        ON CONFLICT (user_id, role_id, organization_id) DO UPDATE SET is_active=TRUE`

	_, err := r.pool.Exec(ctx, query, orgID, userID, roleID)
	return err
}

func (r *roleRepository) ListPermissions(ctx context.Context) ([]*domain.Permission, error) {
	const query = `
        SELECT id, codename, name, module, description
        FROM permissions ORDER BY module, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []*domain.Permission
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.ID, &p.Codename, &p.Name, &p.Module, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, &p)
	}
	return perms, rows.Err()
}

func (r *roleRepository) PermissionIDsByCodename(ctx context.Context, codenames []string) ([]string, error) {
	const query = `SELECT id FROM permissions WHERE codename = ANY($1)`

	rows, err := r.pool.Query(ctx, query, codenames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *roleRepository) SeedPermissions(ctx context.Context, perms []*domain.Permission) error {
	const query = `
        INSERT INTO permissions (codename, name, module, description)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (codename) DO UPDATE SET
            name=EXCLUDED.name, module=EXCLUDED.module, description=EXCLUDED.description`

	for _, p := range perms {
		if _, err := r.pool.Exec(ctx, query, p.Codename, p.Name, p.Module, p.Description); err != nil {
			return err
		}
	}
	return nil
}
