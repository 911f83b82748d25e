package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/goober-garden/internal/service"
)

// FingerprintHandler serves fresh-token allocation for provisioning new
// capture hardware.
type FingerprintHandler struct {
	fingerprints *service.FingerprintService
	logger       *slog.Logger
}

func NewFingerprintHandler(fingerprints *service.FingerprintService, logger *slog.Logger) *FingerprintHandler {
	return &FingerprintHandler{fingerprints: fingerprints, logger: logger}
}

// HandleAllocateFresh hands out an unused token from the 0–79 pool.
//
// HTTP: GET /v1/fingerprints/fresh
// RESPONSE: 200, the bare token as text/plain (the provisioning script
// pipes it straight into firmware flashing — no JSON on purpose)
// ERRORS: 404 when all 80 tokens are in use
func (h *FingerprintHandler) HandleAllocateFresh(w http.ResponseWriter, r *http.Request) {
	token, err := h.fingerprints.AllocateFresh(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(token)); err != nil {
		h.logger.Error("failed to write token response", slog.String("error", err.Error()))
	}
}
