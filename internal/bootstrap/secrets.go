package bootstrap

import (
	"context"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	"github.com/GregMSThompson/solicitation-agent/internal/config"
	"github.com/GregMSThompson/solicitation-agent/internal/errs"
	"github.com/GregMSThompson/solicitation-agent/internal/store"
)

type credentialReader interface {
	GetCredential(ctx context.Context, secretID string) (string, error)
}

// ResolveSecrets replaces sm://<secret-id> credential values with the latest
// secret version. No Secret Manager client is opened when nothing refers to it.
func ResolveSecrets(ctx context.Context, cfg *config.Config) error {
	if len(cfg.SecretRefs()) == 0 {
		return nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return errs.NewExternalServiceError("secretmanager", "failed to create secret manager client", err)
	}
	defer client.Close()

	return resolveSecrets(ctx, cfg, store.NewCredentialStore(client, cfg.ProjectID))
}

func resolveSecrets(ctx context.Context, cfg *config.Config, creds credentialReader) error {
	for name, field := range cfg.SecretRefs() {
		secretID := strings.TrimPrefix(*field, config.SecretRefPrefix)
		if secretID == "" {
			return errs.NewConfigError(name, "empty secret reference for "+name)
		}
		value, err := creds.GetCredential(ctx, secretID)
		if err != nil {
			return err
		}
		*field = value
	}
	return nil
}
