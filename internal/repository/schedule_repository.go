package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/salon-service/internal/domain"
)

// ScheduleRepository handles persistence for staff availability windows.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.StaffSchedule) error
	List(ctx context.Context, filter ScheduleFilter) ([]domain.StaffSchedule, error)
}

// ScheduleFilter defines query params for schedule listing.
type ScheduleFilter struct {
	StaffID       *string
	Date          *time.Time
	AvailableOnly bool
	Limit         int
	Offset        int
}

type scheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository instantiates the repository.
func NewScheduleRepository(pool *pgxpool.Pool) ScheduleRepository {
	return &scheduleRepository{pool: pool}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.StaffSchedule) error {
	const query = `
        INSERT INTO staff_schedules (staff_id, schedule_date, start_time, end_time, is_available)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`

	return translate(r.pool.QueryRow(ctx, query,
		schedule.StaffID,
		schedule.Date,
		toPgTime(schedule.StartTime),
		toPgTime(schedule.EndTime),
		schedule.IsAvailable,
	).Scan(&schedule.ID, &schedule.CreatedAt))
}

func (r *scheduleRepository) List(ctx context.Context, filter ScheduleFilter) ([]domain.StaffSchedule, error) {
	query := `
        SELECT ss.id, ss.staff_id, u.username, ss.schedule_date, ss.start_time, ss.end_time, ss.is_available, ss.created_at
        FROM staff_schedules ss
        JOIN users u ON u.id = ss.staff_id`
	args := []any{}
	clauses := []string{}

	if filter.StaffID != nil {
		args = append(args, *filter.StaffID)
		clauses = append(clauses, fmt.Sprintf("ss.staff_id=$%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		clauses = append(clauses, fmt.Sprintf("ss.schedule_date=$%d", len(args)))
	}
	if filter.AvailableOnly {
		clauses = append(clauses, "ss.is_available")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY ss.schedule_date ASC, ss.start_time ASC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.StaffSchedule{}
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *schedule)
	}
	return result, rows.Err()
}

func scanSchedule(row pgx.Row) (*domain.StaffSchedule, error) {
	var (
		schedule   domain.StaffSchedule
		start, end pgtype.Time
	)
	if err := row.Scan(
		&schedule.ID,
		&schedule.StaffID,
		&schedule.StaffUsername,
		&schedule.Date,
		&start,
		&end,
		&schedule.IsAvailable,
		&schedule.CreatedAt,
	); err != nil {
		return nil, err
	}
	schedule.StartTime = fromPgTime(start)
	schedule.EndTime = fromPgTime(end)
	return &schedule, nil
}

func toPgTime(t domain.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: time.Duration(t).Microseconds(), Valid: true}
}

func fromPgTime(t pgtype.Time) domain.TimeOfDay {
	return domain.TimeOfDay(time.Duration(t.Microseconds) * time.Microsecond)
}
