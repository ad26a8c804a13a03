package config

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/adrianliechti/nimbus/pkg/limiter"
	"github.com/adrianliechti/nimbus/pkg/otel"
	"github.com/adrianliechti/nimbus/pkg/provider"
	"github.com/adrianliechti/nimbus/pkg/provider/anthropic"
	"github.com/adrianliechti/nimbus/pkg/provider/google"
	"github.com/adrianliechti/nimbus/pkg/provider/openai"
)

const DefaultModel = "gemini-2.5-flash"

type completerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	Model string `yaml:"model"`

	Project  string `yaml:"project"`
	Location string `yaml:"location"`

	System string `yaml:"system"`

	Temperature *float32 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"max_tokens"`

	Limit   *int   `yaml:"limit"`
	Timeout string `yaml:"timeout"`
}

func createCompleter(ctx context.Context, cfg completerConfig, creds *credentialConfig, client *http.Client) (provider.Completer, error) {
	completer, err := createProviderCompleter(ctx, cfg, creds, client)

	if err != nil {
		return nil, err
	}

	name := strings.ToLower(cfg.Type)

	if name == "" {
		name = "vertex"
	}

	model := cfg.Model

	if name == "vertex" || name == "gemini" {
		model = modelOrDefault(model)
	}

	completer = limiter.NewCompleter(limiter.New(cfg.Limit), completer)
	completer = otel.NewCompleter(name, model, completer)

	return completer, nil
}

func createProviderCompleter(ctx context.Context, cfg completerConfig, creds *credentialConfig, client *http.Client) (provider.Completer, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "vertex":
		return vertexCompleter(ctx, cfg, creds, client)

	case "gemini":
		return geminiCompleter(cfg, client)

	case "openai":
		return openaiCompleter(cfg, client)

	case "anthropic":
		return anthropicCompleter(cfg, client)

	default:
		return nil, errors.New("invalid completer type: " + cfg.Type)
	}
}

func vertexCompleter(ctx context.Context, cfg completerConfig, creds *credentialConfig, client *http.Client) (provider.Completer, error) {
	if cfg.Project == "" {
		return nil, errors.New("missing google cloud project")
	}

	source, err := createCredential(ctx, creds, client)

	if err != nil {
		return nil, err
	}

	options := []google.Option{
		google.WithClient(client),
		google.WithVertex(cfg.Project, cfg.Location, source),
	}

	if cfg.URL != "" {
		options = append(options, google.WithURL(cfg.URL))
	}

	return google.NewCompleter(modelOrDefault(cfg.Model), options...)
}

func geminiCompleter(cfg completerConfig, client *http.Client) (provider.Completer, error) {
	if cfg.Token == "" {
		return nil, errors.New("missing gemini api key")
	}

	options := []google.Option{
		google.WithClient(client),
		google.WithToken(cfg.Token),
	}

	if cfg.URL != "" {
		options = append(options, google.WithURL(cfg.URL))
	}

	return google.NewCompleter(modelOrDefault(cfg.Model), options...)
}

func openaiCompleter(cfg completerConfig, client *http.Client) (provider.Completer, error) {
	options := []openai.Option{
		openai.WithClient(client),
	}

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	return openai.NewCompleter(cfg.URL, cfg.Model, options...)
}

func anthropicCompleter(cfg completerConfig, client *http.Client) (provider.Completer, error) {
	options := []anthropic.Option{
		anthropic.WithClient(client),
	}

	if cfg.Token != "" {
		options = append(options, anthropic.WithToken(cfg.Token))
	}

	return anthropic.NewCompleter(cfg.URL, cfg.Model, options...)
}

func modelOrDefault(model string) string {
	if model == "" {
		return DefaultModel
	}

	return model
}
