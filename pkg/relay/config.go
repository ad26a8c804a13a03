package relay

import (
	"time"
)

const (
	DefaultCompleteTimeout   = 60 * time.Second
	DefaultSynthesizeTimeout = 60 * time.Second
	DefaultVoicesTimeout     = 30 * time.Second
)

type Config struct {
	system string

	temperature *float32
	maxTokens   *int

	plain bool

	format string

	completeTimeout   time.Duration
	synthesizeTimeout time.Duration
	voicesTimeout     time.Duration
}

type Option func(*Config)

func WithSystem(system string) Option {
	return func(c *Config) {
		c.system = system
	}
}

func WithTemperature(temperature *float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens *int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

// WithPlainSpeech strips markdown from the generated text before it is spoken.
func WithPlainSpeech(plain bool) Option {
	return func(c *Config) {
		c.plain = plain
	}
}

// WithFormat requests a provider specific audio encoding.
func WithFormat(format string) Option {
	return func(c *Config) {
		c.format = format
	}
}

func WithCompleteTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.completeTimeout = d
		}
	}
}

func WithSynthesizeTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.synthesizeTimeout = d
		}
	}
}

func WithVoicesTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.voicesTimeout = d
		}
	}
}
