package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/salon-service/internal/domain"
)

// PaymentFilter captures listing parameters.
type PaymentFilter struct {
	CustomerID *string
	Status     *domain.PaymentStatus
	Limit      int
	Offset     int
}

// PaymentTransition describes a guarded status change.
type PaymentTransition struct {
	ID        string
	From      domain.PaymentStatus
	To        domain.PaymentStatus
	Method    domain.PaymentMethod
	Reference string
	PaidAt    *time.Time
}

// PaymentRepository encapsulates payment persistence. Payments are only created together with
// their appointment, see AppointmentRepository.CreateWithPayment.
type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByAppointment(ctx context.Context, appointmentID string) (*domain.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error)
	// Transition applies the change only if the stored status equals t.From.
	Transition(ctx context.Context, t PaymentTransition) (*domain.Payment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository instantiates repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

const paymentSelect = `
        SELECT p.id, p.appointment_id, a.customer_id, c.username, a.service, p.amount::text, p.method,
               p.status, p.transaction_reference, p.paid_at, p.created_at
        FROM payments p
        JOIN appointments a ON a.id = p.appointment_id
        JOIN users c ON c.id = a.customer_id`

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	return r.fetchSingle(ctx, paymentSelect+` WHERE p.id=$1`, id)
}

func (r *paymentRepository) GetByAppointment(ctx context.Context, appointmentID string) (*domain.Payment, error) {
	return r.fetchSingle(ctx, paymentSelect+` WHERE p.appointment_id=$1`, appointmentID)
}

func (r *paymentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Payment, error) {
	payment, err := scanPayment(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, translate(err)
	}
	return payment, nil
}

func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error) {
	query := paymentSelect + ` WHERE 1=1`
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		query += fmt.Sprintf(" AND a.customer_id=$%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND p.status=$%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *payment)
	}
	return result, rows.Err()
}

func (r *paymentRepository) Transition(ctx context.Context, t PaymentTransition) (*domain.Payment, error) {
	const query = `
        UPDATE payments SET status=$3, method=$4, transaction_reference=$5, paid_at=$6
        WHERE id=$1 AND status=$2`

	cmd, err := r.pool.Exec(ctx, query, t.ID, t.From, t.To, t.Method, t.Reference, t.PaidAt)
	if err != nil {
		return nil, translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrStaleState
	}
	return r.GetByID(ctx, t.ID)
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		payment domain.Payment
		amount  string
	)
	if err := row.Scan(
		&payment.ID,
		&payment.AppointmentID,
		&payment.CustomerID,
		&payment.CustomerUsername,
		&payment.Service,
		&amount,
		&payment.Method,
		&payment.Status,
		&payment.TransactionReference,
		&payment.PaidAt,
		&payment.CreatedAt,
	); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse payment amount %q: %w", amount, err)
	}
	payment.Amount = parsed
	return &payment, nil
}
