package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"golang.org/x/oauth2/google/externalaccount"
)

var (
	ErrMissingSubjectToken = errors.New("missing identity token")
	ErrExpiredSubjectToken = errors.New("identity token expired")
)

var signatureAlgorithms = []jose.SignatureAlgorithm{
	jose.RS256, jose.RS384, jose.RS512,
	jose.PS256, jose.PS384, jose.PS512,
	jose.ES256, jose.ES384, jose.ES512,
	jose.EdDSA,
}

var _ externalaccount.SubjectTokenSupplier = (*SubjectSupplier)(nil)

// SubjectSupplier reads the platform issued OIDC token on every exchange.
type SubjectSupplier struct {
	read func() (string, error)

	now func() time.Time
}

// EnvSubject reads the identity token from an environment variable.
func EnvSubject(name string) *SubjectSupplier {
	return &SubjectSupplier{
		read: func() (string, error) {
			return os.Getenv(name), nil
		},

		now: time.Now,
	}
}

// FileSubject reads the identity token from a file, e.g. a projected service account token.
func FileSubject(path string) *SubjectSupplier {
	return &SubjectSupplier{
		read: func() (string, error) {
			data, err := os.ReadFile(path)

			if err != nil {
				return "", err
			}

			return string(data), nil
		},

		now: time.Now,
	}
}

func (s *SubjectSupplier) SubjectToken(ctx context.Context, options externalaccount.SupplierOptions) (string, error) {
	token, err := s.read()

	if err != nil {
		return "", fmt.Errorf("unable to read identity token: %w", err)
	}

	token = strings.TrimSpace(token)

	if token == "" {
		return "", ErrMissingSubjectToken
	}

	if err := validateSubjectToken(token, s.now()); err != nil {
		return "", err
	}

	return token, nil
}

// validateSubjectToken checks shape and expiry only; the STS verifies the signature.
func validateSubjectToken(token string, now time.Time) error {
	parsed, err := jwt.ParseSigned(token, signatureAlgorithms)

	if err != nil {
		return fmt.Errorf("malformed identity token: %w", err)
	}

	var claims jwt.Claims

	if err := parsed.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return fmt.Errorf("malformed identity token: %w", err)
	}

	if claims.Expiry != nil && !claims.Expiry.Time().After(now) {
		return ErrExpiredSubjectToken
	}

	return nil
}
