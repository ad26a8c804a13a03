package provider

import (
	"context"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, input string, options *SynthesizeOptions) (*Synthesis, error)
}

type SynthesizeOptions struct {
	Voice string

	// Format selects the provider specific audio encoding, e.g. mp3_44100_128 or opus.
	Format string
}

type Synthesis struct {
	ID    string
	Model string

	Content     []byte
	ContentType string
}
