package credential

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google/externalaccount"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

const SubjectTokenTypeJWT = "urn:ietf:params:oauth:token-type:jwt"

// Audience builds the STS audience of a workload identity pool provider.
func Audience(projectNumber, pool, provider string) string {
	return fmt.Sprintf("//iam.googleapis.com/projects/%s/locations/global/workloadIdentityPools/%s/providers/%s", projectNumber, pool, provider)
}

// NewFederated exchanges the identity token of subject at the security token service
// and impersonates serviceAccount with the resulting federated token.
func NewFederated(ctx context.Context, audience, serviceAccount string, subject externalaccount.SubjectTokenSupplier, options ...Option) (oauth2.TokenSource, error) {
	if audience == "" {
		return nil, errors.New("missing workload identity audience")
	}

	if serviceAccount == "" {
		return nil, errors.New("missing service account")
	}

	if subject == nil {
		return nil, errors.New("missing identity token supplier")
	}

	cfg := newConfig(options)
	ctx = cfg.context(ctx)

	federated, err := externalaccount.NewTokenSource(ctx, externalaccount.Config{
		Audience: audience,
		Scopes:   cfg.scopes,

		SubjectTokenType:     SubjectTokenTypeJWT,
		SubjectTokenSupplier: subject,
	})

	if err != nil {
		return nil, fmt.Errorf("unable to create federated token source: %w", err)
	}

	client := &http.Client{
		Transport: &oauth2.Transport{
			Source: federated,
			Base:   cfg.transport(),
		},
	}

	impersonated, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
		TargetPrincipal: serviceAccount,
		Scopes:          cfg.scopes,
	}, option.WithHTTPClient(client))

	if err != nil {
		return nil, fmt.Errorf("unable to impersonate service account: %w", err)
	}

	return impersonated, nil
}
