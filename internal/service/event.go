package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/model"
	"github.com/sakif/goober-garden/internal/repository"
)

// EventService owns the catalog of events a goober can experience.
// Entries are created administratively and are immutable afterwards; the
// history engine only ever draws from them.
type EventService struct {
	repo   repository.EventRepository
	logger *slog.Logger
	rng    randSource
}

func NewEventService(repo repository.EventRepository, logger *slog.Logger) *EventService {
	return &EventService{
		repo:   repo,
		logger: logger,
		rng:    stdRand{},
	}
}

// Create validates and stores a new catalog event. Name and description are
// required; the stat value arrives as an already-typed variant (the handler
// translates the wire's type/value_float/value_string triple).
func (s *EventService) Create(ctx context.Context, name, description, statName string, value model.StatValue) (*model.Event, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "event name is required")
	}
	if description == "" {
		return nil, apperror.ValidationFailed("description", "event description is required")
	}
	if value.Kind != model.KindFloat && value.Kind != model.KindString {
		return nil, apperror.ValidationFailed("type", `event type must be "float" or "string"`)
	}

	event := &model.Event{
		Name:        name,
		Description: description,
		StatName:    strings.TrimSpace(statName),
		Value:       value,
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		s.logger.Error("failed to create event",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("event created",
		slog.String("id", event.ID),
		slog.String("name", event.Name),
		slog.String("type", string(event.Value.Kind)),
	)
	return event, nil
}

// Random draws one event uniformly from the whole catalog. Returns
// apperror.ErrEmpty when no events exist — callers must handle that case
// rather than assume the catalog is populated.
func (s *EventService) Random(ctx context.Context) (*model.Event, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, apperror.Empty("event")
	}
	e := events[s.rng.Intn(len(events))]
	return &e, nil
}
