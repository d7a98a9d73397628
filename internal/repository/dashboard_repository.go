package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardQuery bounds the aggregation windows. All instants are precomputed by the caller in
// the salon time zone.
type DashboardQuery struct {
	CustomerID *string
	Now        time.Time
	TodayStart time.Time
	TodayEnd   time.Time
	WeekEnd    time.Time
}

// DashboardCounts are the scalar dashboard figures.
type DashboardCounts struct {
	Appointments      int64
	Upcoming          int64
	Today             int64
	Week              int64
	PendingPayments   int64
	RequestedPayments int64
}

// StaffLoad is the number of BOOKED slots of one staff member in a window.
type StaffLoad struct {
	StaffUsername string
	BookedSlots   int64
}

// DashboardRepository runs read-only aggregations.
type DashboardRepository interface {
	Counts(ctx context.Context, q DashboardQuery) (DashboardCounts, error)
	StaffLoad(ctx context.Context, from, to time.Time) ([]StaffLoad, error)
}

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository instantiates repository.
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

func (r *dashboardRepository) Counts(ctx context.Context, q DashboardQuery) (DashboardCounts, error) {
	const query = `
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE a.status = 'BOOKED' AND a.appointment_datetime >= $2),
            COUNT(*) FILTER (WHERE a.appointment_datetime >= $3 AND a.appointment_datetime < $4),
            COUNT(*) FILTER (WHERE a.appointment_datetime >= $3 AND a.appointment_datetime < $5),
            COUNT(p.id) FILTER (WHERE p.status IN ('PENDING', 'REQUESTED')),
            COUNT(p.id) FILTER (WHERE p.status = 'REQUESTED')
        FROM appointments a
        LEFT JOIN payments p ON p.appointment_id = a.id
        WHERE ($1::uuid IS NULL OR a.customer_id = $1::uuid)`

	var c DashboardCounts
	err := r.pool.QueryRow(ctx, query, q.CustomerID, q.Now, q.TodayStart, q.TodayEnd, q.WeekEnd).Scan(
		&c.Appointments,
		&c.Upcoming,
		&c.Today,
		&c.Week,
		&c.PendingPayments,
		&c.RequestedPayments,
	)
	return c, err
}

func (r *dashboardRepository) StaffLoad(ctx context.Context, from, to time.Time) ([]StaffLoad, error) {
	const query = `
        SELECT s.username, COUNT(*)
        FROM appointments a
        JOIN users s ON s.id = a.staff_id
        WHERE a.status = 'BOOKED' AND a.appointment_datetime >= $1 AND a.appointment_datetime < $2
        GROUP BY s.username
        ORDER BY s.username ASC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []StaffLoad{}
	for rows.Next() {
		var load StaffLoad
		if err := rows.Scan(&load.StaffUsername, &load.BookedSlots); err != nil {
			return nil, err
		}
		result = append(result, load)
	}
	return result, rows.Err()
}
