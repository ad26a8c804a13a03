package config

import (
	"errors"
	"net/http"
	"strings"

	"github.com/adrianliechti/nimbus/pkg/limiter"
	"github.com/adrianliechti/nimbus/pkg/otel"
	"github.com/adrianliechti/nimbus/pkg/provider/elevenlabs"
	"github.com/adrianliechti/nimbus/pkg/provider/openai"
)

type synthesizerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	Model string `yaml:"model"`

	Stability       *float32 `yaml:"stability"`
	SimilarityBoost *float32 `yaml:"similarity_boost"`

	Format string `yaml:"format"`
	Plain  bool   `yaml:"plain"`

	Limit   *int   `yaml:"limit"`
	Timeout string `yaml:"timeout"`

	VoicesTimeout string `yaml:"voices_timeout"`
}

func createSynthesizer(cfg synthesizerConfig, client *http.Client) (otel.Synthesizer, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "elevenlabs":
		return elevenlabsSynthesizer(cfg, client)

	case "openai":
		return openaiSynthesizer(cfg, client)

	default:
		return nil, errors.New("invalid synthesizer type: " + cfg.Type)
	}
}

func elevenlabsSynthesizer(cfg synthesizerConfig, client *http.Client) (otel.Synthesizer, error) {
	stability := float32(elevenlabs.DefaultStability)
	similarityBoost := float32(elevenlabs.DefaultSimilarityBoost)

	if cfg.Stability != nil {
		stability = *cfg.Stability
	}

	if cfg.SimilarityBoost != nil {
		similarityBoost = *cfg.SimilarityBoost
	}

	options := []elevenlabs.Option{
		elevenlabs.WithClient(client),
		elevenlabs.WithToken(cfg.Token),
		elevenlabs.WithVoiceSettings(stability, similarityBoost),
	}

	c, err := elevenlabs.New(cfg.URL, cfg.Model, options...)

	if err != nil {
		return nil, err
	}

	limited := limiter.NewSynthesizer(limiter.New(cfg.Limit), c)

	return otel.NewSynthesizer("elevenlabs", cfg.Model, limited, c), nil
}

// openaiSynthesizer speaks with the OpenAI voices; it has no voice catalog.
func openaiSynthesizer(cfg synthesizerConfig, client *http.Client) (otel.Synthesizer, error) {
	options := []openai.Option{
		openai.WithClient(client),
	}

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	s, err := openai.NewSynthesizer(cfg.URL, cfg.Model, options...)

	if err != nil {
		return nil, err
	}

	limited := limiter.NewSynthesizer(limiter.New(cfg.Limit), s)

	return otel.NewSynthesizer("openai", cfg.Model, limited, nil), nil
}
