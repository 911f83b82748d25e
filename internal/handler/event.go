package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/goober-garden/internal/apperror"
	"github.com/sakif/goober-garden/internal/model"
	"github.com/sakif/goober-garden/internal/service"
)

// EventHandler serves the administrative event-catalog endpoint.
type EventHandler struct {
	events *service.EventService
	logger *slog.Logger
}

func NewEventHandler(events *service.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: events, logger: logger}
}

// createEventRequest is the wire shape of an event definition: a type tag
// plus two optional value fields, of which exactly the matching one should
// be set. This two-nullable-field shape exists ONLY here and in the
// database — between the edges the value is a tagged variant.
type createEventRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	StatName    string   `json:"stat_name"`
	Type        string   `json:"type"`
	ValueFloat  *float64 `json:"value_float"`
	ValueString *string  `json:"value_string"`
}

type createEventResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleCreate defines a new catalog event.
//
// HTTP: POST /v1/events
// REQUEST: {"name":"Find seed","description":"...","stat_name":"seeds",
//
//	"type":"float","value_float":3.0}
//
// RESPONSE: 201 {"name":"Find seed","description":"..."}
// ERRORS: 400 missing name/description, 400 bad type/value combination
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid event JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	value, err := statValueFromRequest(req)
	if err != nil {
		writeError(w, err)
		return
	}

	event, err := h.events.Create(r.Context(), req.Name, req.Description, req.StatName, value)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createEventResponse{
		Name:        event.Name,
		Description: event.Description,
	})
}

// statValueFromRequest translates the wire's tag-plus-nullables triple into
// the domain variant, rejecting combinations where the populated field
// doesn't match the tag.
func statValueFromRequest(req createEventRequest) (model.StatValue, error) {
	switch model.ValueKind(req.Type) {
	case model.KindFloat:
		if req.ValueFloat == nil {
			return model.StatValue{}, apperror.ValidationFailed("value_float",
				"value_float is required for float events")
		}
		return model.FloatStat(*req.ValueFloat), nil
	case model.KindString:
		if req.ValueString == nil {
			return model.StatValue{}, apperror.ValidationFailed("value_string",
				"value_string is required for string events")
		}
		return model.TextStat(*req.ValueString), nil
	default:
		return model.StatValue{}, apperror.ValidationFailed("type",
			`event type must be "float" or "string"`)
	}
}
