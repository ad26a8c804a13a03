package config

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adrianliechti/nimbus/pkg/credential"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google/externalaccount"
)

type credentialConfig struct {
	Type string `yaml:"type"`

	Path string `yaml:"path"`
	JSON string `yaml:"json"`

	Audience string `yaml:"audience"`

	ProjectNumber string `yaml:"project_number"`
	Pool          string `yaml:"pool"`
	Provider      string `yaml:"provider"`

	ServiceAccount string `yaml:"service_account"`

	Subject *subjectConfig `yaml:"subject"`

	Scopes []string `yaml:"scopes"`

	Refresh bool `yaml:"refresh"`
}

type subjectConfig struct {
	Env  string `yaml:"env"`
	File string `yaml:"file"`
}

// createCredential exchanges the first token before returning so a broken
// credential stops the process instead of failing the first request.
func createCredential(ctx context.Context, cfg *credentialConfig, client *http.Client) (oauth2.TokenSource, error) {
	if cfg == nil {
		cfg = &credentialConfig{
			Type: "default",
		}
	}

	source, err := createTokenSource(ctx, *cfg, client)

	if err != nil {
		return nil, err
	}

	if cfg.Refresh {
		slog.Info("credential refresh enabled", "type", cfg.Type)
		source = credential.Refreshing(source)
	} else {
		source = credential.Once(source)
	}

	if err := credential.Prime(source); err != nil {
		return nil, err
	}

	return source, nil
}

func createTokenSource(ctx context.Context, cfg credentialConfig, client *http.Client) (oauth2.TokenSource, error) {
	var options []credential.Option

	if client != nil {
		options = append(options, credential.WithClient(client))
	}

	if len(cfg.Scopes) > 0 {
		options = append(options, credential.WithScopes(cfg.Scopes...))
	}

	switch strings.ToLower(cfg.Type) {
	case "file":
		return credential.FromFile(ctx, cfg.Path, options...)

	case "json":
		return credential.FromJSON(ctx, []byte(cfg.JSON), options...)

	case "", "default":
		return credential.FromEnvironment(ctx, options...)

	case "federated":
		return federatedCredential(ctx, cfg, options)

	default:
		return nil, errors.New("invalid credential type: " + cfg.Type)
	}
}

func federatedCredential(ctx context.Context, cfg credentialConfig, options []credential.Option) (oauth2.TokenSource, error) {
	audience := cfg.Audience

	if audience == "" {
		if cfg.ProjectNumber == "" || cfg.Pool == "" || cfg.Provider == "" {
			return nil, errors.New("federated credential requires audience or project_number, pool and provider")
		}

		audience = credential.Audience(cfg.ProjectNumber, cfg.Pool, cfg.Provider)
	}

	var subject externalaccount.SubjectTokenSupplier

	switch {
	case cfg.Subject != nil && cfg.Subject.File != "":
		subject = credential.FileSubject(cfg.Subject.File)

	case cfg.Subject != nil && cfg.Subject.Env != "":
		subject = credential.EnvSubject(cfg.Subject.Env)

	default:
		subject = credential.EnvSubject("VERCEL_OIDC_TOKEN")
	}

	return credential.NewFederated(ctx, audience, cfg.ServiceAccount, subject, options...)
}
