package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/salon-service/internal/domain"
)

// AppointmentFilter captures listing parameters.
type AppointmentFilter struct {
	CustomerID  *string
	StaffID     *string
	Status      *domain.AppointmentStatus
	SearchTerm  *string
	From        *time.Time
	To          *time.Time
	NewestFirst bool
	Limit       int
	Offset      int
}

// AppointmentRepository encapsulates appointment persistence.
type AppointmentRepository interface {
	// CreateWithPayment stores the appointment and its payment atomically.
	CreateWithPayment(ctx context.Context, appt *domain.Appointment, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	// UpdateStatus moves the appointment from one status to another, failing with ErrStaleState
	// when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus) error
	List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
	// BookedTimes returns start instants of BOOKED appointments of the staff member in [from, to).
	BookedTimes(ctx context.Context, staffID string, from, to time.Time) ([]time.Time, error)
	HasBooking(ctx context.Context, staffID string, at time.Time) (bool, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

const appointmentSelect = `
        SELECT a.id, a.customer_id, c.username, a.staff_id, COALESCE(s.username, ''), a.service,
               a.stylist_name, a.appointment_datetime, a.duration_minutes, a.notes, a.status, a.created_at
        FROM appointments a
        JOIN users c ON c.id = a.customer_id
        LEFT JOIN users s ON s.id = a.staff_id`

func (r *appointmentRepository) CreateWithPayment(ctx context.Context, appt *domain.Appointment, payment *domain.Payment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertAppointment = `
        INSERT INTO appointments (customer_id, staff_id, service, stylist_name, appointment_datetime, duration_minutes, notes, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertAppointment,
		appt.CustomerID,
		appt.StaffID,
		appt.Service,
		appt.StylistName,
		appt.DateTime,
		appt.DurationMinutes,
		appt.Notes,
		appt.Status,
	).Scan(&appt.ID, &appt.CreatedAt); err != nil {
		return translate(err)
	}

	payment.AppointmentID = appt.ID
	const insertPayment = `
        INSERT INTO payments (appointment_id, amount, method, status, transaction_reference)
        VALUES ($1,$2::numeric,$3,$4,$5)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertPayment,
		payment.AppointmentID,
		payment.Amount.StringFixed(2),
		payment.Method,
		payment.Status,
		payment.TransactionReference,
	).Scan(&payment.ID, &payment.CreatedAt); err != nil {
		return translate(err)
	}

	return translate(tx.Commit(ctx))
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	appt, err := scanAppointment(r.pool.QueryRow(ctx, appointmentSelect+` WHERE a.id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return appt, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE appointments SET status=$3 WHERE id=$1 AND status=$2`, id, from, to)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrStaleState
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("a.customer_id=$%d", len(args)))
	}
	if filter.StaffID != nil {
		args = append(args, *filter.StaffID)
		clauses = append(clauses, fmt.Sprintf("a.staff_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("a.status=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("a.appointment_datetime >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("a.appointment_datetime < $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		p := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(a.service) LIKE %s OR LOWER(COALESCE(s.username, '')) LIKE %s OR LOWER(c.username) LIKE %s)", p, p, p))
	}

	order := "ASC"
	if filter.NewestFirst {
		order = "DESC"
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY a.appointment_datetime %s, a.created_at %s LIMIT %d OFFSET %d`,
		appointmentSelect, strings.Join(clauses, " AND "), order, order, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Appointment{}
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *appt)
	}
	return result, rows.Err()
}

func (r *appointmentRepository) BookedTimes(ctx context.Context, staffID string, from, to time.Time) ([]time.Time, error) {
	const query = `
        SELECT appointment_datetime FROM appointments
        WHERE staff_id=$1 AND status='BOOKED' AND appointment_datetime >= $2 AND appointment_datetime < $3
        ORDER BY appointment_datetime ASC`

	rows, err := r.pool.Query(ctx, query, staffID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []time.Time
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, err
		}
		result = append(result, at)
	}
	return result, rows.Err()
}

func (r *appointmentRepository) HasBooking(ctx context.Context, staffID string, at time.Time) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM appointments WHERE staff_id=$1 AND appointment_datetime=$2 AND status='BOOKED'
        )`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, staffID, at).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	if err := row.Scan(
		&appt.ID,
		&appt.CustomerID,
		&appt.CustomerUsername,
		&appt.StaffID,
		&appt.StaffUsername,
		&appt.Service,
		&appt.StylistName,
		&appt.DateTime,
		&appt.DurationMinutes,
		&appt.Notes,
		&appt.Status,
		&appt.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &appt, nil
}
