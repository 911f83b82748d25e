package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/model"
)

// newTestDB creates a fresh in-memory database for one test. Fast, isolated,
// destroyed when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestFingerprint(t *testing.T, db *DB, token string) *model.Fingerprint {
	t.Helper()
	fp := &model.Fingerprint{Token: token}
	if err := db.CreateFingerprint(context.Background(), fp); err != nil {
		t.Fatalf("failed to create test fingerprint: %v", err)
	}
	return fp
}

func TestCreateFingerprint(t *testing.T) {
	db := newTestDB(t)

	fp := createTestFingerprint(t, db, "7")
	if fp.ID == "" {
		t.Error("CreateFingerprint() did not set fp.ID")
	}

	got, err := db.GetByToken(context.Background(), "7")
	if err != nil {
		t.Fatalf("GetByToken() error = %v", err)
	}
	if got.ID != fp.ID || got.Token != "7" {
		t.Errorf("GetByToken() = %+v, want id=%s token=7", got, fp.ID)
	}
}

func TestGetByToken_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByToken(context.Background(), "nope")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByToken() error = %v, want ErrNotFound", err)
	}
}

// A duplicate insert must be recovered, not surfaced: the second Create
// returns the FIRST row's identity. This is the Ensure race contract.
func TestCreateFingerprint_DuplicateRecovers(t *testing.T) {
	db := newTestDB(t)

	first := createTestFingerprint(t, db, "42")

	second := &model.Fingerprint{Token: "42"}
	if err := db.CreateFingerprint(context.Background(), second); err != nil {
		t.Fatalf("duplicate CreateFingerprint() error = %v, want recovery", err)
	}
	if second.ID != first.ID {
		t.Errorf("duplicate create returned id %s, want existing id %s", second.ID, first.ID)
	}

	// Still exactly one row.
	tokens, err := db.ListTokens(context.Background())
	if err != nil {
		t.Fatalf("ListTokens() error = %v", err)
	}
	if len(tokens) != 1 {
		t.Errorf("got %d rows for token 42, want 1", len(tokens))
	}
}

func TestListTokens(t *testing.T) {
	db := newTestDB(t)

	if tokens, err := db.ListTokens(context.Background()); err != nil || len(tokens) != 0 {
		t.Fatalf("ListTokens() on empty db = %v, %v; want empty, nil", tokens, err)
	}

	createTestFingerprint(t, db, "7")
	createTestFingerprint(t, db, "07")
	createTestFingerprint(t, db, "banana")

	tokens, err := db.ListTokens(context.Background())
	if err != nil {
		t.Fatalf("ListTokens() error = %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("ListTokens() returned %d tokens, want 3", len(tokens))
	}

	// Tokens are stored verbatim — "07" and "banana" are legitimate values.
	seen := make(map[string]bool)
	for _, tok := range tokens {
		seen[tok] = true
	}
	for _, want := range []string{"7", "07", "banana"} {
		if !seen[want] {
			t.Errorf("ListTokens() missing %q", want)
		}
	}
}
