package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

const uniqueViolationCode = "23505"

// CreateShift inserts a shift record. A second shift for the same event,
// volunteer and exact start is rejected by a unique index and surfaced as
// db.ErrDuplicateAssignment; that is the concurrent-writer guard, not the
// day-level conflict policy, which the scheduler checks before writing.
func (d *DB) CreateShift(ctx context.Context, shift *db.Shift) error {
	var teamID, positionID *string
	if shift.TeamID != "" {
		teamID = &shift.TeamID
	}
	if shift.PositionID != "" {
		positionID = &shift.PositionID
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO shift (id, event_id, volunteer_id, start_at, end_at, confirmed, team_id, position_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, shift.ID, shift.EventID, shift.VolunteerID, shift.Start, shift.End, shift.Confirmed, teamID, positionID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return db.ErrDuplicateAssignment
		}
		return fmt.Errorf("failed to insert shift: %w", err)
	}

	return nil
}

// GetShift retrieves a single shift by id
func (d *DB) GetShift(ctx context.Context, id string) (*db.Shift, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, event_id, volunteer_id, start_at, end_at, confirmed, team_id, position_id
		FROM shift
		WHERE id = $1
	`, id)

	shift, err := scanShift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}

	return shift, nil
}

// UpdateShift applies a partial update to a shift's volunteer or
// confirmation flag. Nil fields keep their stored value.
func (d *DB) UpdateShift(ctx context.Context, id string, update db.ShiftUpdate) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE shift
		SET volunteer_id = COALESCE($2, volunteer_id),
		    confirmed    = COALESCE($3, confirmed)
		WHERE id = $1
	`, id, update.VolunteerID, update.Confirmed)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return db.ErrShiftNotFound
	}

	return nil
}

// DeleteShift removes a shift. Deleting an id that does not exist is a no-op.
func (d *DB) DeleteShift(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM shift WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	return nil
}

// ListShiftsByEventAndDay returns the event's shifts starting on the given
// calendar day, ordered by start time
func (d *DB) ListShiftsByEventAndDay(ctx context.Context, eventID string, day time.Time) ([]db.Shift, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	rows, err := d.pool.Query(ctx, `
		SELECT id, event_id, volunteer_id, start_at, end_at, confirmed, team_id, position_id
		FROM shift
		WHERE event_id = $1 AND start_at >= $2 AND start_at < $3
		ORDER BY start_at
	`, eventID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts for day: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// ListShiftsInRange returns the volunteer's shifts on the event whose start
// falls in [from, to), ordered by start time
func (d *DB) ListShiftsInRange(ctx context.Context, eventID, volunteerID string, from, to time.Time) ([]db.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, event_id, volunteer_id, start_at, end_at, confirmed, team_id, position_id
		FROM shift
		WHERE event_id = $1 AND volunteer_id = $2 AND start_at >= $3 AND start_at < $4
		ORDER BY start_at
	`, eventID, volunteerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts in range: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

func collectShifts(rows pgx.Rows) ([]db.Shift, error) {
	var shifts []db.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, *shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

func scanShift(row pgx.Row) (*db.Shift, error) {
	var s db.Shift
	var teamID, positionID *string
	if err := row.Scan(&s.ID, &s.EventID, &s.VolunteerID, &s.Start, &s.End, &s.Confirmed, &teamID, &positionID); err != nil {
		return nil, err
	}
	if teamID != nil {
		s.TeamID = *teamID
	}
	if positionID != nil {
		s.PositionID = *positionID
	}
	return &s, nil
}
