package credential

import (
	"context"

	"cloud.google.com/go/auth"
	"golang.org/x/oauth2"
)

// Credentials adapts source for clients built on cloud.google.com/go/auth.
func Credentials(source oauth2.TokenSource) *auth.Credentials {
	return auth.NewCredentials(&auth.CredentialsOptions{
		TokenProvider: &tokenProvider{
			source: source,
		},
	})
}

type tokenProvider struct {
	source oauth2.TokenSource
}

func (p *tokenProvider) Token(ctx context.Context) (*auth.Token, error) {
	t, err := p.source.Token()

	if err != nil {
		return nil, err
	}

	return &auth.Token{
		Value:  t.AccessToken,
		Type:   t.Type(),
		Expiry: t.Expiry,
	}, nil
}
