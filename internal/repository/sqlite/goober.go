package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/model"
	"github.com/sakif/goober-garden/internal/repository"
)

var _ repository.GooberRepository = (*DB)(nil)

// CreateGoober inserts a goober row bound to its fingerprint.
//
// The UNIQUE constraint on fingerprint_id backs up the service-level
// conflict check: if two registrations race past the check, the loser's
// insert fails here and is reported as a Conflict, not a storage error.
func (db *DB) CreateGoober(ctx context.Context, g *model.Goober) error {
	g.ID = xid.New().String()
	g.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO goobers (id, name, fingerprint_id, image, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.FingerprintID, g.Image, g.CreatedAt,
	)
	if err != nil {
		if _, lookupErr := db.GetByFingerprintID(ctx, g.FingerprintID); lookupErr == nil {
			return apperror.Conflict("goober", g.Token)
		}
		return fmt.Errorf("sqlite: creating goober %s: %w", g.Name, err)
	}
	return nil
}

// GetByFingerprintID returns the goober bound to the given fingerprint row,
// or NotFound when the fingerprint has no goober yet.
func (db *DB) GetByFingerprintID(ctx context.Context, fingerprintID string) (*model.Goober, error) {
	var g model.Goober
	err := db.conn.QueryRowContext(ctx,
		`SELECT g.id, g.name, g.fingerprint_id, f.fingerprint, g.image, g.created_at
		 FROM goobers g
		 JOIN fingerprints f ON f.id = g.fingerprint_id
		 WHERE g.fingerprint_id = ?`,
		fingerprintID,
	).Scan(&g.ID, &g.Name, &g.FingerprintID, &g.Token, &g.Image, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("goober", fingerprintID)
		}
		return nil, fmt.Errorf("sqlite: getting goober for fingerprint %s: %w", fingerprintID, err)
	}
	return &g, nil
}

// ListGoobers returns all goobers in insertion order.
func (db *DB) ListGoobers(ctx context.Context) ([]model.Goober, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT g.id, g.name, g.fingerprint_id, f.fingerprint, g.image, g.created_at
		 FROM goobers g
		 JOIN fingerprints f ON f.id = g.fingerprint_id
		 ORDER BY g.rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing goobers: %w", err)
	}
	defer rows.Close()

	var goobers []model.Goober
	for rows.Next() {
		var g model.Goober
		if err := rows.Scan(&g.ID, &g.Name, &g.FingerprintID, &g.Token, &g.Image, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning goober row: %w", err)
		}
		goobers = append(goobers, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating goobers: %w", err)
	}
	return goobers, nil
}
