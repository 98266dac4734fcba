package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusekai/platform-api/internal/domain"
)

// PaymentRepository defines persistence access for signup payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByTransactionUUID(ctx context.Context, transactionUUID string) (*domain.Payment, error)
	SetStatus(ctx context.Context, id string, status domain.PaymentStatus) error
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository returns a Postgres-backed implementation.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (transaction_uuid, amount, status, organization_name, subdomain, username, email, phone, password)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		payment.TransactionUUID,
		payment.Amount,
		payment.Status,
		payment.OrganizationName,
		payment.Subdomain,
		payment.Username,
		payment.Email,
		payment.Phone,
		payment.Password,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepository) GetByTransactionUUID(ctx context.Context, transactionUUID string) (*domain.Payment, error) {
	const query = `
        SELECT id, transaction_uuid, amount, status, organization_name, subdomain, username, email, phone, password, created_at, updated_at
        FROM payments WHERE transaction_uuid=$1`

	var p domain.Payment
	if err := r.pool.QueryRow(ctx, query, transactionUUID).Scan(
		&p.ID,
		&p.TransactionUUID,
		&p.Amount,
		&p.Status,
		&p.OrganizationName,
		&p.Subdomain,
		&p.Username,
		&p.Email,
		&p.Phone,
		&p.Password,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) SetStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE payments SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
