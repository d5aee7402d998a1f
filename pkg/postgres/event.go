package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adrianoapc/carvalho-rostering/pkg/core/model"
	"github.com/adrianoapc/carvalho-rostering/pkg/db"
)

// GetEvent retrieves a single event by id. Events are written by the
// external event-management system; this module only reads them.
func (d *DB) GetEvent(ctx context.Context, id string) (*db.Event, error) {
	var e db.Event
	var duration *int
	var kind string

	err := d.pool.QueryRow(ctx, `
		SELECT id, title, start_at, duration_minutes, kind
		FROM event
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Title, &e.Start, &duration, &kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	if duration != nil {
		e.DurationMinutes = *duration
	}
	e.Kind = model.EventKind(kind)
	if !e.Kind.IsValid() {
		return nil, fmt.Errorf("event %s has unknown kind %q", id, kind)
	}

	return &e, nil
}
