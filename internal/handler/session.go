package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/goober-garden/internal/service"
)

// SessionHandler serves check-in recording and current-session resolution.
type SessionHandler struct {
	sessions *service.SessionService
	logger   *slog.Logger
	baseURL  string
}

func NewSessionHandler(sessions *service.SessionService, logger *slog.Logger, baseURL string) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger, baseURL: baseURL}
}

type checkInRequest struct {
	Fingerprint string `json:"fingerprint"`
}

type checkInResponse struct {
	Fingerprint string `json:"fingerprint"`
}

// HandleCheckIn records a presence event for a fingerprint.
//
// HTTP: POST /v1/checkin
// REQUEST: {"fingerprint":"7"}
// RESPONSE: 201 {"fingerprint":"7"}
// ERRORS: 400 missing fingerprint
func (h *SessionHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid check-in JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	ci, err := h.sessions.RecordCheckIn(r.Context(), req.Fingerprint)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, checkInResponse{Fingerprint: ci.Token})
}

// accessResponse is returned when the active session's fingerprint has no
// goober yet: a URL the visitor can follow to claim it.
type accessResponse struct {
	AccessURL string `json:"access_url"`
}

// HandleCurrent resolves the current session for the display.
//
// HTTP: GET /v1/session
// RESPONSE: GooberView JSON when the session's fingerprint is bound to a
// goober (touched with the short adventure window first); otherwise
// {"access_url": "..."} pointing at registration.
// ERRORS: 404 when no check-in happened in the session window
func (h *SessionHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	res, err := h.sessions.Resolve(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if res.Goober != nil {
		writeJSON(w, http.StatusOK, res.Goober)
		return
	}
	writeJSON(w, http.StatusOK, accessResponse{
		AccessURL: fmt.Sprintf("%s/register/%s", h.baseURL, res.AccessKey),
	})
}
