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

// Compile-time check that *DB satisfies the interface.
var _ repository.FingerprintRepository = (*DB)(nil)

// GetByToken looks up a fingerprint by exact token match.
// Absent is reported as apperror.NotFound — callers decide whether that is
// an error (profile lookup) or just "create it" (Ensure).
func (db *DB) GetByToken(ctx context.Context, token string) (*model.Fingerprint, error) {
	var fp model.Fingerprint
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, fingerprint FROM fingerprints WHERE fingerprint = ?`,
		token,
	).Scan(&fp.ID, &fp.Token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("fingerprint", token)
		}
		return nil, fmt.Errorf("sqlite: getting fingerprint %s: %w", token, err)
	}
	return &fp, nil
}

// CreateFingerprint inserts a new fingerprint row.
//
// RACE RECOVERY:
// Two concurrent check-ins for the same unseen token both pass the "not
// found" lookup and both try to insert. The UNIQUE constraint rejects the
// loser. That is not a failure — it means someone else already created the
// row — so we re-read and return the existing row instead of surfacing the
// constraint violation.
func (db *DB) CreateFingerprint(ctx context.Context, fp *model.Fingerprint) error {
	fp.ID = xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO fingerprints (id, fingerprint) VALUES (?, ?)`,
		fp.ID, fp.Token,
	)
	if err != nil {
		existing, lookupErr := db.GetByToken(ctx, fp.Token)
		if lookupErr == nil {
			*fp = *existing
			return nil
		}
		return fmt.Errorf("sqlite: creating fingerprint %s: %w", fp.Token, err)
	}
	return nil
}

// ListTokens returns every stored token value. The allocator compares these
// as strings against candidate decimal text — a stored "07" does not block
// candidate "7".
func (db *DB) ListTokens(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT fingerprint FROM fingerprints`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing fingerprint tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("sqlite: scanning token row: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tokens: %w", err)
	}
	return tokens, nil
}
