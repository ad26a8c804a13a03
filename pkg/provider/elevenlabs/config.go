package elevenlabs

import (
	"net/http"
)

type Config struct {
	url string

	token string
	model string

	stability       float32
	similarityBoost float32

	client *http.Client
}

type Option func(*Config)

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

// WithVoiceSettings overrides the default stability and similarity boost.
func WithVoiceSettings(stability, similarityBoost float32) Option {
	return func(c *Config) {
		c.stability = stability
		c.similarityBoost = similarityBoost
	}
}
