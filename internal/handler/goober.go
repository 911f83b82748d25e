// Package handler contains the HTTP layer: request parsing, response
// shaping, and nothing else. All rules live in the service layer.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/goober-garden/internal/service"
)

// GooberHandler serves the goober directory and profile endpoints.
type GooberHandler struct {
	goobers *service.GooberService
	logger  *slog.Logger
}

func NewGooberHandler(goobers *service.GooberService, logger *slog.Logger) *GooberHandler {
	return &GooberHandler{goobers: goobers, logger: logger}
}

// gooberSummary is the list/create response item: just the identity pair.
type gooberSummary struct {
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
}

// HandleList returns all registered goobers.
//
// HTTP: GET /v1/goobers
// RESPONSE: [{"name":"Rex","fingerprint":"7"}, ...]
func (h *GooberHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	goobers, err := h.goobers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]gooberSummary, 0, len(goobers))
	for _, g := range goobers {
		out = append(out, gooberSummary{Name: g.Name, Fingerprint: g.Token})
	}
	writeJSON(w, http.StatusOK, out)
}

// createGooberRequest is the registration payload.
type createGooberRequest struct {
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
}

// HandleCreate registers a new goober.
//
// HTTP: POST /v1/goobers
// REQUEST: {"name":"Rex","fingerprint":"7"}
// RESPONSE: 201 {"name":"Rex","fingerprint":"7"}
// ERRORS: 400 missing fields, 400 fingerprint already owns a goober
func (h *GooberHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createGooberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid goober JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	goober, err := h.goobers.Create(r.Context(), req.Name, req.Fingerprint)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, gooberSummary{
		Name:        goober.Name,
		Fingerprint: goober.Token,
	})
}

// HandleProfile returns a goober's full rendered view. Reading a profile is
// itself a visit: the history engine is touched with the long re-engagement
// window, so a goober unseen for days greets its owner with a new event.
//
// HTTP: GET /v1/goobers/{fingerprint}
// RESPONSE: GooberView JSON
// ERRORS: 404 unknown fingerprint or no goober bound to it
func (h *GooberHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("fingerprint")
	view, err := h.goobers.Profile(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
