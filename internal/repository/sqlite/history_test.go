package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/goober-garden/internal/model"
)

func TestHistoryByGoober_Empty(t *testing.T) {
	db := newTestDB(t)
	g := createTestGoober(t, db, "Rex", "7")

	history, err := db.HistoryByGoober(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("HistoryByGoober() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("fresh goober has %d history rows, want 0", len(history))
	}
}

// History comes back newest first, joined with its catalog event — the
// ordering the engine's Fresh/Cooling/Due derivation depends on.
func TestHistoryByGoober_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	g := createTestGoober(t, db, "Rex", "7")
	seed := createTestEvent(t, db, "Find seed", model.FloatStat(3.0))
	nap := createTestEvent(t, db, "Take nap", model.TextStat("cosy"))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Append the OLDER entry last; ordering must come from timestamps.
	newer := &model.HistoryEntry{GooberID: g.ID, EventID: nap.ID, Timestamp: base.Add(time.Minute)}
	if err := db.AppendHistory(ctx, newer); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}
	older := &model.HistoryEntry{GooberID: g.ID, EventID: seed.ID, Timestamp: base}
	if err := db.AppendHistory(ctx, older); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}

	history, err := db.HistoryByGoober(ctx, g.ID)
	if err != nil {
		t.Fatalf("HistoryByGoober() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("HistoryByGoober() returned %d rows, want 2", len(history))
	}

	if history[0].Event.Name != "Take nap" {
		t.Errorf("history[0] = %q, want the newer entry %q", history[0].Event.Name, "Take nap")
	}
	if history[1].Event.Name != "Find seed" {
		t.Errorf("history[1] = %q, want the older entry %q", history[1].Event.Name, "Find seed")
	}

	// The joined event carries its kind-correct stat value.
	if history[0].Event.Value.Kind != model.KindString || history[0].Event.Value.Text != "cosy" {
		t.Errorf("joined event value = %+v, want string cosy", history[0].Event.Value)
	}
	if history[1].Event.Value.Kind != model.KindFloat || history[1].Event.Value.Float != 3.0 {
		t.Errorf("joined event value = %+v, want float 3.0", history[1].Event.Value)
	}
}

// History rows belong to one goober — a second goober's reads don't leak.
func TestHistoryByGoober_Scoped(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rex := createTestGoober(t, db, "Rex", "7")
	ada := createTestGoober(t, db, "Ada", "3")
	ev := createTestEvent(t, db, "Find seed", model.FloatStat(1))

	entry := &model.HistoryEntry{GooberID: rex.ID, EventID: ev.ID, Timestamp: time.Now().UTC()}
	if err := db.AppendHistory(ctx, entry); err != nil {
		t.Fatalf("AppendHistory() error = %v", err)
	}

	adaHistory, err := db.HistoryByGoober(ctx, ada.ID)
	if err != nil {
		t.Fatalf("HistoryByGoober() error = %v", err)
	}
	if len(adaHistory) != 0 {
		t.Errorf("Ada has %d history rows, want 0", len(adaHistory))
	}
}
