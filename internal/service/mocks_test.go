package service

// Hand-written in-memory mocks for the repository interfaces, in place of a
// real database. The service layer never knows the difference — that is the
// point of depending on interfaces.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/model"
)

// mockStore implements all five repository interfaces, mirroring how the
// real sqlite.DB backs them all with one type.
type mockStore struct {
	fingerprints map[string]*model.Fingerprint // token → row
	goobers      map[string]*model.Goober      // fingerprintID → row
	gooberOrder  []string
	checkins     []*model.CheckIn
	events       []model.Event
	history      []*model.HistoryEntry
	nextID       int
}

func newMockStore() *mockStore {
	return &mockStore{
		fingerprints: make(map[string]*model.Fingerprint),
		goobers:      make(map[string]*model.Goober),
	}
}

func (m *mockStore) id(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *mockStore) GetByToken(_ context.Context, token string) (*model.Fingerprint, error) {
	fp, ok := m.fingerprints[token]
	if !ok {
		return nil, apperror.NotFound("fingerprint", token)
	}
	result := *fp
	return &result, nil
}

func (m *mockStore) CreateFingerprint(_ context.Context, fp *model.Fingerprint) error {
	// Mirror the real repository's race recovery: a duplicate insert
	// returns the existing row.
	if existing, ok := m.fingerprints[fp.Token]; ok {
		*fp = *existing
		return nil
	}
	fp.ID = m.id("fp")
	stored := *fp
	m.fingerprints[fp.Token] = &stored
	return nil
}

func (m *mockStore) ListTokens(_ context.Context) ([]string, error) {
	tokens := make([]string, 0, len(m.fingerprints))
	for tok := range m.fingerprints {
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func (m *mockStore) CreateCheckIn(_ context.Context, ci *model.CheckIn) error {
	ci.ID = m.id("ci")
	stored := *ci
	m.checkins = append(m.checkins, &stored)
	return nil
}

func (m *mockStore) LatestCheckIn(_ context.Context) (*model.CheckIn, error) {
	if len(m.checkins) == 0 {
		return nil, apperror.NotFound("check-in", "latest")
	}
	latest := m.checkins[0]
	for _, ci := range m.checkins[1:] {
		if ci.Timestamp.After(latest.Timestamp) {
			latest = ci
		}
	}
	result := *latest
	return &result, nil
}

func (m *mockStore) CreateGoober(_ context.Context, g *model.Goober) error {
	if _, ok := m.goobers[g.FingerprintID]; ok {
		return apperror.Conflict("goober", g.Token)
	}
	g.ID = m.id("goober")
	g.CreatedAt = time.Now()
	stored := *g
	m.goobers[g.FingerprintID] = &stored
	m.gooberOrder = append(m.gooberOrder, g.FingerprintID)
	return nil
}

func (m *mockStore) GetByFingerprintID(_ context.Context, fingerprintID string) (*model.Goober, error) {
	g, ok := m.goobers[fingerprintID]
	if !ok {
		return nil, apperror.NotFound("goober", fingerprintID)
	}
	result := *g
	return &result, nil
}

func (m *mockStore) ListGoobers(_ context.Context) ([]model.Goober, error) {
	result := make([]model.Goober, 0, len(m.gooberOrder))
	for _, fpID := range m.gooberOrder {
		result = append(result, *m.goobers[fpID])
	}
	return result, nil
}

func (m *mockStore) CreateEvent(_ context.Context, e *model.Event) error {
	e.ID = m.id("ev")
	m.events = append(m.events, *e)
	return nil
}

func (m *mockStore) ListEvents(_ context.Context) ([]model.Event, error) {
	return append([]model.Event(nil), m.events...), nil
}

func (m *mockStore) AppendHistory(_ context.Context, h *model.HistoryEntry) error {
	h.ID = m.id("hist")
	stored := *h
	m.history = append(m.history, &stored)
	return nil
}

func (m *mockStore) HistoryByGoober(_ context.Context, gooberID string) ([]model.HistoryEvent, error) {
	var result []model.HistoryEvent
	for _, h := range m.history {
		if h.GooberID != gooberID {
			continue
		}
		var event model.Event
		for _, e := range m.events {
			if e.ID == h.EventID {
				event = e
				break
			}
		}
		result = append(result, model.HistoryEvent{Event: event, Timestamp: h.Timestamp})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

// fixedRand always returns the same index (clamped), making "random" picks
// deterministic.
type fixedRand struct{ pick int }

func (f fixedRand) Intn(n int) int {
	if f.pick >= n {
		return n - 1
	}
	return f.pick
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestServices wires the full service graph over one mock store with the
// production default windows (5m session, 30s adventure, 6d re-engage).
func newTestServices(t *testing.T) (*mockStore, *FingerprintService, *EventService, *HistoryService, *GooberService, *SessionService) {
	t.Helper()
	store := newMockStore()
	logger := newTestLogger()

	fingerprints := NewFingerprintService(store, logger)
	events := NewEventService(store, logger)
	history := NewHistoryService(store, events, logger)
	goobers := NewGooberService(store, fingerprints, history, logger, 6*24*time.Hour)
	sessions := NewSessionService(store, fingerprints, goobers, history, logger,
		5*time.Minute, 30*time.Second)

	return store, fingerprints, events, history, goobers, sessions
}
