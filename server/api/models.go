package api

import (
	"encoding/json"
)

type ChatRequest struct {
	Prompt  string `json:"prompt"`
	VoiceID string `json:"voice_id"`
}

type ChatResponse struct {
	Text  string  `json:"text"`
	Audio *string `json:"audio"`
}

type VoicesResponse struct {
	Voices []json.RawMessage `json:"voices"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
