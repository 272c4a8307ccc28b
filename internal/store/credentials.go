package store

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/solicitation-agent/internal/errs"
)

// Secrets path
// projects/{project}/secrets/{secretID}/versions/latest

type credentialStore struct {
	client    *secretmanager.Client
	projectID string
}

func NewCredentialStore(client *secretmanager.Client, projectID string) *credentialStore {
	return &credentialStore{client: client, projectID: projectID}
}

func (s *credentialStore) secretVersion(secretID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, secretID)
}

func (s *credentialStore) GetCredential(ctx context.Context, secretID string) (string, error) {
	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: s.secretVersion(secretID),
	})
	if status.Code(err) == codes.NotFound {
		return "", errs.NewNotFoundError(fmt.Sprintf("secret %s not found", secretID))
	}
	if err != nil {
		return "", errs.NewExternalServiceError("secretmanager", "failed to read secret "+secretID, err)
	}
	return string(res.Payload.Data), nil
}
