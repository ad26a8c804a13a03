package provider

import (
	"context"
	"encoding/json"
)

type VoiceLister interface {
	ListVoices(ctx context.Context) ([]Voice, error)
}

// Voice is a catalog entry exactly as the speech provider returned it.
type Voice = json.RawMessage
