package credential

import (
	"fmt"
	"sync"

	"golang.org/x/oauth2"
)

// Once returns a source that fetches a single token for the lifetime of the process.
// The token is never refreshed, not even after it expired.
func Once(source oauth2.TokenSource) oauth2.TokenSource {
	return &onceSource{
		token: sync.OnceValues(source.Token),
	}
}

type onceSource struct {
	token func() (*oauth2.Token, error)
}

func (s *onceSource) Token() (*oauth2.Token, error) {
	return s.token()
}

// Refreshing returns a source that caches its token until it expires.
func Refreshing(source oauth2.TokenSource) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, source)
}

// Prime fetches the first token so exchange failures surface at startup.
func Prime(source oauth2.TokenSource) error {
	token, err := source.Token()

	if err != nil {
		return fmt.Errorf("credential exchange failed: %w", err)
	}

	if !token.Valid() {
		return fmt.Errorf("credential exchange failed: invalid token")
	}

	return nil
}
