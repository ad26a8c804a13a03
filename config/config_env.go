package config

import (
	"context"
	"os"
)

// FromEnvironment builds the configuration from environment variables when no
// configuration file exists.
func FromEnvironment(ctx context.Context) (*Config, error) {
	return load(ctx, environmentFile(os.Getenv))
}

func environmentFile(getenv func(string) string) *configFile {
	lookup := func(keys ...string) string {
		for _, key := range keys {
			if val := getenv(key); val != "" {
				return val
			}
		}

		return ""
	}

	file := &configFile{
		Address: ":8080",
		Public:  lookup("PUBLIC_DIR"),

		Credentials: environmentCredential(lookup),

		Completer: completerConfig{
			Type: "vertex",

			Project:  lookup("GOOGLE_CLOUD_PROJECT", "GCP_PROJECT_ID"),
			Location: lookup("GOOGLE_CLOUD_LOCATION"),

			Model: lookup("GEMINI_MODEL"),
		},

		Synthesizer: synthesizerConfig{
			Type: "elevenlabs",

			Token: lookup("ELEVENLABS_API_KEY"),
			Model: lookup("ELEVENLABS_MODEL"),
		},
	}

	if file.Public == "" {
		if info, err := os.Stat("public"); err == nil && info.IsDir() {
			file.Public = "public"
		}
	}

	if port := lookup("PORT"); port != "" {
		file.Address = ":" + port
	}

	if token := lookup("NIMBUS_TOKEN"); token != "" {
		file.Authorizers = append(file.Authorizers, authorizerConfig{
			Type:  "static",
			Token: token,
		})
	}

	return file
}

func environmentCredential(lookup func(keys ...string) string) *credentialConfig {
	projectNumber := lookup("GCP_PROJECT_NUMBER")
	serviceAccount := lookup("GCP_SERVICE_ACCOUNT_EMAIL")

	pool := lookup("GCP_WORKLOAD_IDENTITY_POOL_ID")
	provider := lookup("GCP_WORKLOAD_IDENTITY_POOL_PROVIDER_ID")

	if projectNumber != "" && serviceAccount != "" && pool != "" && provider != "" {
		return &credentialConfig{
			Type: "federated",

			ProjectNumber: projectNumber,
			Pool:          pool,
			Provider:      provider,

			ServiceAccount: serviceAccount,

			Subject: &subjectConfig{
				Env: "VERCEL_OIDC_TOKEN",
			},
		}
	}

	if data := lookup("GOOGLE_APPLICATION_CREDENTIALS_JSON"); data != "" {
		return &credentialConfig{
			Type: "json",
			JSON: data,
		}
	}

	if path := lookup("GOOGLE_APPLICATION_CREDENTIALS"); path != "" {
		return &credentialConfig{
			Type: "file",
			Path: path,
		}
	}

	return &credentialConfig{
		Type: "default",
	}
}
