package api

import (
	"log/slog"
	"net/http"
)

func (h *Handler) handleVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.Relay.Voices(r.Context())

	if err != nil {
		slog.ErrorContext(r.Context(), "voices failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJson(w, VoicesResponse{
		Voices: voices,
	})
}
