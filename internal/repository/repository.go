package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
	// ErrSlotTaken is returned when a staff member already has a BOOKED appointment at the instant.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrStaleState is returned when a guarded status transition finds a different current status.
	ErrStaleState = errors.New("status changed concurrently")
)

const (
	uniqueViolation      = "23505"
	foreignKeyViolation  = "23503"
	invalidTextRep       = "22P02"
	bookedSlotConstraint = "appointments_staff_slot_booked_uidx"
)

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		if pgErr.ConstraintName == bookedSlotConstraint {
			return ErrSlotTaken
		}
		return ErrDuplicate
	case foreignKeyViolation, invalidTextRep:
		// A malformed uuid or a dangling reference both mean the referenced row does not exist.
		return ErrNotFound
	}
	return err
}
