package provider

import (
	"errors"
	"net/http"
	"strconv"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
}

var (
	ErrNoCandidates        = errors.New("no completion candidates returned")
	ErrMalformedCompletion = errors.New("malformed completion returned")
)

// Error is returned by HTTP based providers for non-success responses.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	text := e.Message

	if text == "" {
		text = http.StatusText(e.StatusCode)
	}

	return "provider error (" + strconv.Itoa(e.StatusCode) + "): " + text
}
