package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/metrics"
	"github.com/sakif/goober-garden/internal/model"
	"github.com/sakif/goober-garden/internal/repository"
)

// HistoryService is the stateful core: it decides when a goober is due for
// a new event and renders the accumulated history.
//
// THE STATE MACHINE (derived, never stored):
//
//	Fresh   — no history yet:            any touch appends an event
//	Cooling — newest entry age ≤ window: touch is a no-op
//	Due     — newest entry age > window: touch appends exactly one event
//
// The state is a pure function of now() and the newest stored timestamp.
// Nothing caches it — caching "due" would go stale the moment a concurrent
// touch appended a row.
//
// Two call sites use two windows: the session handler touches with the
// short adventure cooldown (a present visitor's goober adventures often),
// the profile handler touches with the long re-engagement cooldown (a
// returning visitor days later gets one fresh event).
type HistoryService struct {
	repo   repository.HistoryRepository
	events *EventService
	logger *slog.Logger
	now    nowFunc
}

func NewHistoryService(repo repository.HistoryRepository, events *EventService, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		repo:   repo,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// Touch appends at most one randomly drawn event to the goober's history,
// and only when the goober is Fresh or Due relative to the given window.
// Repeated touches inside one window never append more than one row.
//
// An empty event catalog makes Touch a no-op rather than an error: a
// goober's profile must stay readable before the operator has defined any
// events.
func (s *HistoryService) Touch(ctx context.Context, goober *model.Goober, window time.Duration) error {
	history, err := s.repo.HistoryByGoober(ctx, goober.ID)
	if err != nil {
		return err
	}

	if len(history) > 0 && s.now().Sub(history[0].Timestamp) <= window {
		return nil // Cooling — inside the window, nothing to do
	}

	event, err := s.events.Random(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrEmpty) {
			s.logger.Debug("no events defined, skipping history append",
				slog.String("goober", goober.ID))
			return nil
		}
		return err
	}

	entry := &model.HistoryEntry{
		GooberID:  goober.ID,
		EventID:   event.ID,
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.AppendHistory(ctx, entry); err != nil {
		s.logger.Error("failed to append history",
			slog.String("goober", goober.ID),
			slog.String("event", event.ID),
			slog.String("error", err.Error()),
		)
		return err
	}

	metrics.HistoryAppends.Inc()
	s.logger.Info("history appended",
		slog.String("goober", goober.ID),
		slog.String("goober_name", goober.Name),
		slog.String("event", event.Name),
	)
	return nil
}

// Render produces the external view of a goober: identity, last_seen, the
// event list newest-first, and the derived stat list. Float-kind events
// contribute numeric stat values, string-kind events contribute text —
// the variant type makes the wrong-field case unrepresentable.
func (s *HistoryService) Render(ctx context.Context, goober *model.Goober) (*model.GooberView, error) {
	history, err := s.repo.HistoryByGoober(ctx, goober.ID)
	if err != nil {
		return nil, err
	}

	view := &model.GooberView{
		Name:        goober.Name,
		Fingerprint: goober.Token,
		Image:       goober.Image,
		Events:      make([]model.EventView, 0, len(history)),
		Stats:       make([]model.StatView, 0, len(history)),
	}

	if len(history) > 0 {
		ts := history[0].Timestamp
		view.LastSeen = &ts
	}

	for _, he := range history {
		view.Events = append(view.Events, model.EventView{
			Event:       he.Event.Name,
			Description: he.Event.Description,
		})
		view.Stats = append(view.Stats, model.StatView{
			StatName:  he.Event.StatName,
			StatValue: he.Event.Value,
		})
	}

	return view, nil
}
