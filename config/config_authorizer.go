package config

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/nimbus/pkg/auth"
	"github.com/adrianliechti/nimbus/pkg/auth/oidc"
	"github.com/adrianliechti/nimbus/pkg/auth/static"
)

type authorizerConfig struct {
	Type string `yaml:"type"`

	Token string `yaml:"token"`

	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`
}

func (c *Config) registerAuthorizer(ctx context.Context, f *configFile) error {
	for _, a := range f.Authorizers {
		authorizer, err := createAuthorizer(ctx, a)

		if err != nil {
			return err
		}

		c.Authorizers = append(c.Authorizers, authorizer)
	}

	return nil
}

func createAuthorizer(ctx context.Context, cfg authorizerConfig) (auth.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "static":
		return staticAuthorizer(cfg)

	case "oidc":
		return oidcAuthorizer(ctx, cfg)

	default:
		return nil, errors.New("invalid authorizer type: " + cfg.Type)
	}
}

func staticAuthorizer(cfg authorizerConfig) (auth.Provider, error) {
	if cfg.Token == "" {
		return nil, errors.New("missing static authorizer token")
	}

	return static.New(cfg.Token)
}

func oidcAuthorizer(ctx context.Context, cfg authorizerConfig) (auth.Provider, error) {
	return oidc.New(ctx, cfg.Issuer, cfg.Audience)
}
