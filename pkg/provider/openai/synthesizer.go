package openai

import (
	"context"
	"fmt"
	"io"

	"github.com/adrianliechti/nimbus/pkg/provider"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config
	speech openai.AudioSpeechService
}

func NewSynthesizer(url, model string, options ...Option) (*Synthesizer, error) {
	if model == "" {
		model = openai.SpeechModelGPT4oMiniTTS
	}

	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
		speech: openai.NewAudioSpeechService(cfg.Options()...),
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	voice := options.Voice

	if voice == "" {
		voice = string(openai.AudioSpeechNewParamsVoiceStringAlloy)
	}

	format := openai.AudioSpeechNewParamsResponseFormatMP3

	if options.Format != "" {
		format = openai.AudioSpeechNewParamsResponseFormat(options.Format)
	}

	result, err := s.speech.New(ctx, openai.AudioSpeechNewParams{
		Model: s.model,
		Input: content,

		Voice: openai.AudioSpeechNewParamsVoiceUnion{
			OfString: openai.String(voice),
		},

		ResponseFormat: format,
	})

	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}

	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)

	if err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Content:     data,
		ContentType: contentType(format),
	}, nil
}

func contentType(format openai.AudioSpeechNewParamsResponseFormat) string {
	switch format {
	case openai.AudioSpeechNewParamsResponseFormatOpus:
		return "audio/ogg"

	case openai.AudioSpeechNewParamsResponseFormatAAC:
		return "audio/aac"

	case openai.AudioSpeechNewParamsResponseFormatFLAC:
		return "audio/flac"

	case openai.AudioSpeechNewParamsResponseFormatWAV:
		return "audio/wav"

	case openai.AudioSpeechNewParamsResponseFormatPCM:
		return "audio/pcm"

	default:
		return "audio/mpeg"
	}
}
