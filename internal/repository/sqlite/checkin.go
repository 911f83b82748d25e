package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/model"
	"github.com/sakif/goober-garden/internal/repository"
)

var _ repository.CheckInRepository = (*DB)(nil)

// CreateCheckIn appends a check-in row. The caller stamps the timestamp (services
// own "now" so tests can pin it); this layer only persists.
func (db *DB) CreateCheckIn(ctx context.Context, ci *model.CheckIn) error {
	ci.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO checkins (id, fingerprint_id, timestamp) VALUES (?, ?, ?)`,
		ci.ID, ci.FingerprintID, ci.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating check-in: %w", err)
	}
	return nil
}

// LatestCheckIn returns the check-in with the maximum timestamp across all
// fingerprints, joined with the token for the caller's convenience.
// "Most recent" is defined by the stored timestamp, not by insertion order.
func (db *DB) LatestCheckIn(ctx context.Context) (*model.CheckIn, error) {
	var ci model.CheckIn
	err := db.conn.QueryRowContext(ctx,
		`SELECT c.id, c.fingerprint_id, f.fingerprint, c.timestamp
		 FROM checkins c
		 JOIN fingerprints f ON f.id = c.fingerprint_id
		 ORDER BY c.timestamp DESC
		 LIMIT 1`,
	).Scan(&ci.ID, &ci.FingerprintID, &ci.Token, &ci.Timestamp)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("check-in", "latest")
		}
		return nil, fmt.Errorf("sqlite: getting latest check-in: %w", err)
	}
	return &ci, nil
}
