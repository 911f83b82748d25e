package sqlite

import (
	"context"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/goober-garden/internal/model"
	"github.com/sakif/goober-garden/internal/repository"
)

var _ repository.HistoryRepository = (*DB)(nil)

// AppendHistory persists one history row. This is the only write path for
// goober history — the engine appends, nothing ever mutates or deletes.
// The caller stamps the timestamp.
func (db *DB) AppendHistory(ctx context.Context, h *model.HistoryEntry) error {
	h.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO goober_history (id, goober_id, event_id, timestamp)
		 VALUES (?, ?, ?, ?)`,
		h.ID, h.GooberID, h.EventID, h.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("sqlite: appending history for goober %s: %w", h.GooberID, err)
	}
	return nil
}

// HistoryByGoober returns the goober's history joined with catalog events,
// newest first. The DESC ordering here is what the whole Fresh/Cooling/Due
// derivation hangs off — the first row is always the most recent entry.
func (db *DB) HistoryByGoober(ctx context.Context, gooberID string) ([]model.HistoryEvent, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT e.id, e.name, e.description, e.stat_name, e.type, e.value_float, e.value_string,
		        h.timestamp
		 FROM goober_history h
		 JOIN events e ON e.id = h.event_id
		 WHERE h.goober_id = ?
		 ORDER BY h.timestamp DESC`,
		gooberID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing history for goober %s: %w", gooberID, err)
	}
	defer rows.Close()

	var history []model.HistoryEvent
	for rows.Next() {
		var he model.HistoryEvent
		e, err := scanEventWith(rows.Scan, &he.Timestamp)
		if err != nil {
			return nil, err
		}
		he.Event = e
		history = append(history, he)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating history: %w", err)
	}
	return history, nil
}

// scanEventWith scans an event plus trailing columns in one call.
func scanEventWith(scan func(dest ...any) error, extra ...any) (model.Event, error) {
	return scanEvent(func(dest ...any) error {
		return scan(append(dest, extra...)...)
	})
}
