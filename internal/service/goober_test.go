package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/model"
)

func TestGooberCreate(t *testing.T) {
	store, _, _, _, goobers, _ := newTestServices(t)

	g, err := goobers.Create(context.Background(), "Rex", "7")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID == "" {
		t.Error("Create() did not set g.ID")
	}
	if g.Token != "7" {
		t.Errorf("Create() token = %q, want %q", g.Token, "7")
	}

	// Registration for a brand-new token mints the fingerprint row too.
	if _, ok := store.fingerprints["7"]; !ok {
		t.Error("Create() did not ensure the fingerprint row")
	}
}

func TestGooberCreate_Validation(t *testing.T) {
	_, _, _, _, goobers, _ := newTestServices(t)
	ctx := context.Background()

	if _, err := goobers.Create(ctx, "", "7"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("missing name error = %v, want ErrValidation", err)
	}
	if _, err := goobers.Create(ctx, "Rex", ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("missing fingerprint error = %v, want ErrValidation", err)
	}
}

// One fingerprint, one goober: repeating a registration is a conflict.
func TestGooberCreate_DuplicateBindConflicts(t *testing.T) {
	_, _, _, _, goobers, _ := newTestServices(t)
	ctx := context.Background()

	if _, err := goobers.Create(ctx, "Rex", "7"); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	_, err := goobers.Create(ctx, "Rex", "7")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("repeat Create() error = %v, want ErrConflict", err)
	}

	// A different name on the same fingerprint conflicts all the same.
	_, err = goobers.Create(ctx, "Imposter", "7")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second bind error = %v, want ErrConflict", err)
	}
}

func TestGooberList_InsertionOrder(t *testing.T) {
	_, _, _, _, goobers, _ := newTestServices(t)
	ctx := context.Background()

	for _, pair := range [][2]string{{"Rex", "7"}, {"Ada", "3"}, {"Bo", "11"}} {
		if _, err := goobers.Create(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("seeding %s: %v", pair[0], err)
		}
	}

	list, err := goobers.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"Rex", "Ada", "Bo"}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("List()[%d] = %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestProfile_UnknownToken(t *testing.T) {
	_, _, _, _, goobers, _ := newTestServices(t)

	_, err := goobers.Profile(context.Background(), "never-seen")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Profile() error = %v, want ErrNotFound", err)
	}
}

func TestProfile_FingerprintWithoutGoober(t *testing.T) {
	_, fingerprints, _, _, goobers, _ := newTestServices(t)
	ctx := context.Background()

	if _, err := fingerprints.Ensure(ctx, "7"); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	_, err := goobers.Profile(ctx, "7")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Profile() of unbound fingerprint error = %v, want ErrNotFound", err)
	}
}

// First-contact scenario: one float event in the catalog, a
// fresh goober, one profile read → one event line and one kind-correct stat.
func TestProfile_FreshGooberGetsFirstEvent(t *testing.T) {
	store, _, events, _, goobers, _ := newTestServices(t)
	ctx := context.Background()

	if _, err := events.Create(ctx, "Find seed", "Found a tasty seed", "seeds", model.FloatStat(3.0)); err != nil {
		t.Fatalf("seeding: %v", err)
	}
	if _, err := goobers.Create(ctx, "Rex", "7"); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	view, err := goobers.Profile(ctx, "7")
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	if len(view.Events) != 1 || view.Events[0].Event != "Find seed" {
		t.Fatalf("Profile() events = %+v, want the one catalog event", view.Events)
	}
	if len(view.Stats) != 1 {
		t.Fatalf("Profile() stats = %+v, want one stat", view.Stats)
	}
	if view.Stats[0].StatName != "seeds" ||
		view.Stats[0].StatValue.Kind != model.KindFloat ||
		view.Stats[0].StatValue.Float != 3.0 {
		t.Errorf("Profile() stat = %+v, want float seeds=3.0", view.Stats[0])
	}
	if view.LastSeen == nil {
		t.Error("Profile() LastSeen = nil after the touch appended")
	}
	if len(store.history) != 1 {
		t.Errorf("Profile() appended %d history rows, want 1", len(store.history))
	}

	// An immediate second read is inside the 6-day window — no new event.
	if _, err := goobers.Profile(ctx, "7"); err != nil {
		t.Fatalf("second Profile() error = %v", err)
	}
	if len(store.history) != 1 {
		t.Errorf("second Profile() appended (now %d rows), want no-op", len(store.history))
	}
}
