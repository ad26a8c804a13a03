package otel

import (
	"context"

	"github.com/adrianliechti/nimbus/pkg/provider"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type Synthesizer interface {
	Observable
	provider.Synthesizer
	provider.VoiceLister
}

type observableSynthesizer struct {
	model    string
	provider string

	synthesizer provider.Synthesizer
	voices      provider.VoiceLister
}

// NewSynthesizer wraps p; voices may be nil when the provider has no catalog.
func NewSynthesizer(provider, model string, p provider.Synthesizer, voices provider.VoiceLister) Synthesizer {
	return &observableSynthesizer{
		synthesizer: p,
		voices:      voices,

		model:    model,
		provider: provider,
	}
}

func (p *observableSynthesizer) otelSetup() {
}

func (p *observableSynthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "synthesize "+p.provider)
	defer span.End()

	span.SetAttributes(
		attribute.String("gen_ai.provider.name", p.provider),
		attribute.Int("synthesis.input.length", len(content)),
	)

	if options != nil && options.Voice != "" {
		span.SetAttributes(attribute.String("synthesis.voice", options.Voice))
	}

	result, err := p.synthesizer.Synthesize(ctx, content, options)

	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("synthesis.output.size", len(result.Content)))

	return result, nil
}

func (p *observableSynthesizer) ListVoices(ctx context.Context) ([]provider.Voice, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "voices "+p.provider)
	defer span.End()

	if p.voices == nil {
		return []provider.Voice{}, nil
	}

	result, err := p.voices.ListVoices(ctx)

	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("voices.count", len(result)))

	return result, nil
}
