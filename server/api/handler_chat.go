package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/nimbus/pkg/relay"
)

const maxRequestSize = 1 << 20

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest

	body := http.MaxBytesReader(w, r.Body, maxRequestSize)

	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	result, err := h.Relay.Chat(r.Context(), relay.ChatRequest{
		Prompt:  req.Prompt,
		VoiceID: req.VoiceID,
	})

	if err != nil {
		if errors.Is(err, relay.ErrMissingInput) {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		slog.ErrorContext(r.Context(), "chat failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJson(w, ChatResponse{
		Text:  result.Text,
		Audio: result.Audio,
	})
}
