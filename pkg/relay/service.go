package relay

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adrianliechti/nimbus/pkg/provider"
	"github.com/adrianliechti/nimbus/pkg/text"
)

var ErrMissingInput = errors.New("prompt and voice_id are required")

type ChatRequest struct {
	Prompt  string
	VoiceID string
}

type ChatResponse struct {
	Text string

	// Audio is the base64 encoded speech, nil when synthesis failed.
	Audio *string
}

// Service turns a prompt into generated text and its spoken rendition.
type Service struct {
	*Config

	completer   provider.Completer
	synthesizer provider.Synthesizer
	voices      provider.VoiceLister
}

func New(completer provider.Completer, synthesizer provider.Synthesizer, voices provider.VoiceLister, options ...Option) (*Service, error) {
	if completer == nil {
		return nil, errors.New("missing completer")
	}

	if synthesizer == nil {
		return nil, errors.New("missing synthesizer")
	}

	cfg := &Config{
		completeTimeout:   DefaultCompleteTimeout,
		synthesizeTimeout: DefaultSynthesizeTimeout,
		voicesTimeout:     DefaultVoicesTimeout,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Service{
		Config: cfg,

		completer:   completer,
		synthesizer: synthesizer,
		voices:      voices,
	}, nil
}

func (s *Service) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" || strings.TrimSpace(req.VoiceID) == "" {
		return nil, ErrMissingInput
	}

	content, err := s.complete(ctx, req.Prompt)

	if err != nil {
		return nil, err
	}

	result := &ChatResponse{
		Text: content,
	}

	speech := content

	if s.plain {
		speech = text.Speakable(content)
	}

	audio, err := s.synthesize(ctx, speech, req.VoiceID)

	if err != nil {
		slog.ErrorContext(ctx, "speech synthesis failed", "voice", req.VoiceID, "error", err)
		return result, nil
	}

	encoded := base64.StdEncoding.EncodeToString(audio)
	result.Audio = &encoded

	return result, nil
}

func (s *Service) Voices(ctx context.Context) ([]provider.Voice, error) {
	if s.voices == nil {
		return []provider.Voice{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.voicesTimeout)
	defer cancel()

	voices, err := s.voices.ListVoices(ctx)

	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}

	if voices == nil {
		voices = []provider.Voice{}
	}

	return voices, nil
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.completeTimeout)
	defer cancel()

	var messages []provider.Message

	if s.system != "" {
		messages = append(messages, provider.SystemMessage(s.system))
	}

	messages = append(messages, provider.UserMessage(prompt))

	completion, err := s.completer.Complete(ctx, messages, &provider.CompleteOptions{
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})

	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}

	content, err := completion.Text()

	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}

	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("generate text: %w", provider.ErrMalformedCompletion)
	}

	return content, nil
}

func (s *Service) synthesize(ctx context.Context, input, voice string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.synthesizeTimeout)
	defer cancel()

	synthesis, err := s.synthesizer.Synthesize(ctx, input, &provider.SynthesizeOptions{
		Voice:  voice,
		Format: s.format,
	})

	if err != nil {
		return nil, err
	}

	if len(synthesis.Content) == 0 {
		return nil, errors.New("empty audio")
	}

	return synthesis.Content, nil
}
