// Package repository declares the storage interfaces the service layer
// depends on. The concrete SQLite implementation lives in the sqlite
// subpackage; tests use in-memory mocks. Services only ever see these
// interfaces — that's what makes them testable without a database.
//
// All five interfaces are implemented by the single sqlite.DB type, so
// method names are entity-qualified (CreateGoober, not Create) to coexist
// on one receiver.
package repository

import (
	"context"

	"github.com/sakif/goober-garden/internal/model"
)

// FingerprintRepository owns the fingerprints table — the only table with a
// uniqueness invariant (one row per token value).
type FingerprintRepository interface {
	// GetByToken does an exact string match on the token. A missing row is
	// reported as apperror.ErrNotFound, which callers treat as "absent",
	// not as a failure.
	GetByToken(ctx context.Context, token string) (*model.Fingerprint, error)

	// CreateFingerprint inserts a fingerprint row. If another request
	// inserted the same token concurrently, it recovers by re-reading and
	// returning the existing row — the uniqueness violation never surfaces.
	CreateFingerprint(ctx context.Context, fp *model.Fingerprint) error

	// ListTokens returns every stored token value. Used by the fresh-token
	// allocator to compute the free set.
	ListTokens(ctx context.Context) ([]string, error)
}

// CheckInRepository owns the append-only check-in log.
type CheckInRepository interface {
	// CreateCheckIn appends a check-in row. No dedup: every call is a row.
	CreateCheckIn(ctx context.Context, ci *model.CheckIn) error

	// LatestCheckIn returns the check-in with the maximum timestamp across
	// all fingerprints, or apperror.ErrNotFound when the log is empty.
	LatestCheckIn(ctx context.Context) (*model.CheckIn, error)
}

// GooberRepository owns goober rows and their one-to-one fingerprint bind.
type GooberRepository interface {
	CreateGoober(ctx context.Context, g *model.Goober) error
	GetByFingerprintID(ctx context.Context, fingerprintID string) (*model.Goober, error)
	// ListGoobers returns all goobers in insertion order.
	ListGoobers(ctx context.Context) ([]model.Goober, error)
}

// EventRepository owns the event catalog.
type EventRepository interface {
	CreateEvent(ctx context.Context, e *model.Event) error
	// ListEvents returns the whole catalog in insertion order. The catalog
	// is small, administratively curated reference data — loading it all to
	// pick one at random is the intended access pattern.
	ListEvents(ctx context.Context) ([]model.Event, error)
}

// HistoryRepository owns goober history rows. Append-only.
type HistoryRepository interface {
	AppendHistory(ctx context.Context, h *model.HistoryEntry) error
	// HistoryByGoober returns the goober's history joined with its catalog
	// events, ordered by timestamp DESCENDING (newest first). Every "most
	// recent" decision in the engine leans on this ordering.
	HistoryByGoober(ctx context.Context, gooberID string) ([]model.HistoryEvent, error)
}
