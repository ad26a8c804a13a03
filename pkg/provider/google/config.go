package google

import (
	"context"
	"net/http"

	"github.com/adrianliechti/nimbus/pkg/credential"

	"golang.org/x/oauth2"
	"google.golang.org/genai"
)

type Config struct {
	url string

	token string
	model string

	project  string
	location string

	source oauth2.TokenSource

	client *http.Client
}

type Option func(*Config)

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

// WithToken selects the Gemini API backend authenticated by an API key.
func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

// WithVertex selects the Vertex AI backend authenticated by bearer tokens of source.
func WithVertex(project, location string, source oauth2.TokenSource) Option {
	return func(c *Config) {
		c.project = project
		c.location = location

		c.source = source
	}
}

func WithURL(url string) Option {
	return func(c *Config) {
		c.url = url
	}
}

func (c *Config) newClient(ctx context.Context) (*genai.Client, error) {
	config := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  c.token,

		HTTPClient: c.client,
	}

	if c.url != "" {
		config.HTTPOptions.BaseURL = c.url
	}

	if c.project != "" {
		config.Backend = genai.BackendVertexAI
		config.APIKey = ""

		config.Project = c.project
		config.Location = c.location

		if c.source != nil {
			var base http.RoundTripper

			if c.client != nil {
				base = c.client.Transport
			}

			config.Credentials = credential.Credentials(c.source)

			config.HTTPClient = &http.Client{
				Transport: &oauth2.Transport{
					Source: c.source,
					Base:   base,
				},
			}
		}
	}

	return genai.NewClient(ctx, config)
}
