package credential

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// FromFile loads service account or authorized user credentials from a JSON key file.
func FromFile(ctx context.Context, path string, options ...Option) (oauth2.TokenSource, error) {
	if path == "" {
		return nil, errors.New("missing credentials file")
	}

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	return FromJSON(ctx, data, options...)
}

// FromJSON parses credentials supplied inline, e.g. through an environment variable.
func FromJSON(ctx context.Context, data []byte, options ...Option) (oauth2.TokenSource, error) {
	if len(data) == 0 {
		return nil, errors.New("missing credentials json")
	}

	cfg := newConfig(options)

	creds, err := google.CredentialsFromJSON(cfg.context(ctx), data, cfg.scopes...)

	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	return creds.TokenSource, nil
}

// FromEnvironment resolves Application Default Credentials.
func FromEnvironment(ctx context.Context, options ...Option) (oauth2.TokenSource, error) {
	cfg := newConfig(options)

	creds, err := google.FindDefaultCredentials(cfg.context(ctx), cfg.scopes...)

	if err != nil {
		return nil, fmt.Errorf("unable to find default credentials: %w", err)
	}

	return creds.TokenSource, nil
}
