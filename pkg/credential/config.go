package credential

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

type Config struct {
	scopes []string

	client *http.Client
}

type Option func(*Config)

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func WithScopes(scopes ...string) Option {
	return func(c *Config) {
		c.scopes = scopes
	}
}

func newConfig(options []Option) *Config {
	c := &Config{
		scopes: []string{CloudPlatformScope},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// context detaches ctx from its deadline: token sources keep the context for later refreshes.
func (c *Config) context(ctx context.Context) context.Context {
	ctx = context.WithoutCancel(ctx)

	if c.client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	}

	return ctx
}

func (c *Config) transport() http.RoundTripper {
	if c.client != nil && c.client.Transport != nil {
		return c.client.Transport
	}

	return http.DefaultTransport
}
