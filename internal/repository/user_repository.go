package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusekai/platform-api/internal/domain"
)

// UserRepository defines persistence access for login identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	// IssueLogin creates the login, binds it to an unattached profile and
	// grants the role in one transaction, so a failed activation leaves
	// nothing behind.
	IssueLogin(ctx context.Context, orgID string, user *domain.User, profileID, roleID string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, email, password_hash, is_active, needs_password_change, initial_password_display)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.NeedsPasswordChange,
		user.InitialPasswordDisplay,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET username=$1, email=$2, password_hash=$3, is_active=$4,
            needs_password_change=$5, initial_password_display=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.NeedsPasswordChange,
		user.InitialPasswordDisplay,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, username, email, password_hash, is_active, needs_password_change, initial_password_display, created_at, updated_at
        FROM users WHERE id=$1`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, email, password_hash, is_active, needs_password_change, initial_password_display, created_at, updated_at
        FROM users WHERE username=$1`

	return r.scanUser(r.pool.QueryRow(ctx, query, username))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, username, email, password_hash, is_active, needs_password_change, initial_password_display, created_at, updated_at
        FROM users WHERE email=$1`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE username=$1)`

	var taken bool
	if err := r.pool.QueryRow(ctx, query, username).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *userRepository) IssueLogin(ctx context.Context, orgID string, user *domain.User, profileID, roleID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertUser = `
        INSERT INTO users (username, email, password_hash, is_active, needs_password_change, initial_password_display)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, insertUser,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.NeedsPasswordChange,
		user.InitialPasswordDisplay,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return err
	}

	// user_id IS NULL guards against attaching over an existing login.
	const attachProfile = `
        UPDATE profiles SET user_id=$1, updated_at=NOW()
        WHERE id=$2 AND organization_id=$3 AND user_id IS NULL`

	cmd, err := tx.Exec(ctx, attachProfile, user.ID, profileID, orgID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	const assignRole = `
        INSERT INTO user_roles (organization_id, user_id, role_id, is_active)
        VALUES ($1, $2, $3, TRUE)
        ON CONFLICT (user_id, role_id, organization_id) DO UPDATE SET is_active=TRUE`

	if _, err := tx.Exec(ctx, assignRole, orgID, user.ID, roleID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.NeedsPasswordChange,
		&user.InitialPasswordDisplay,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
