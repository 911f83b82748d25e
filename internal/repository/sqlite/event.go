package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/goober-garden/internal/model"
	"github.com/sakif/goober-garden/internal/repository"
)

var _ repository.EventRepository = (*DB)(nil)

// CreateEvent inserts a catalog event.
//
// VARIANT → TWO NULLABLE COLUMNS:
// The domain carries the stat value as a tagged variant (model.StatValue).
// SQL can't express that, so the edge translation happens here: exactly one
// of value_float / value_string is written, the other stays NULL. The NULL
// side must be treated as ABSENT on the way back out, never as 0 or "".
func (db *DB) CreateEvent(ctx context.Context, e *model.Event) error {
	e.ID = xid.New().String()

	var vf sql.NullFloat64
	var vs sql.NullString
	switch e.Value.Kind {
	case model.KindFloat:
		vf = sql.NullFloat64{Float64: e.Value.Float, Valid: true}
	case model.KindString:
		vs = sql.NullString{String: e.Value.Text, Valid: true}
	default:
		return fmt.Errorf("sqlite: event %s has unknown value kind %q", e.Name, e.Value.Kind)
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO events (id, name, description, stat_name, type, value_float, value_string)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Description, e.StatName, string(e.Value.Kind), vf, vs,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating event %s: %w", e.Name, err)
	}
	return nil
}

// ListEvents returns the whole catalog in insertion order.
func (db *DB) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, stat_name, type, value_float, value_string
		 FROM events
		 ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating events: %w", err)
	}
	return events, nil
}

// scanEvent reads one event row and rebuilds the tagged variant from the
// type column plus whichever value column is non-NULL.
func scanEvent(scan func(dest ...any) error) (model.Event, error) {
	var (
		e    model.Event
		kind string
		vf   sql.NullFloat64
		vs   sql.NullString
	)
	if err := scan(&e.ID, &e.Name, &e.Description, &e.StatName, &kind, &vf, &vs); err != nil {
		return model.Event{}, fmt.Errorf("sqlite: scanning event row: %w", err)
	}
	switch model.ValueKind(kind) {
	case model.KindFloat:
		e.Value = model.FloatStat(vf.Float64)
	case model.KindString:
		e.Value = model.TextStat(vs.String)
	default:
		return model.Event{}, fmt.Errorf("sqlite: event %s has unknown type %q", e.ID, kind)
	}
	return e, nil
}
