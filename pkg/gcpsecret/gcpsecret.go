package gcpsecret

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Name returns the resource name of a secret version.
func Name(projectID, secretID, secretVersion string) string {
	if secretVersion == "" {
		secretVersion = "latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", projectID, secretID, secretVersion)
}

// Get reads the payload of a secret version.
func Get(ctx context.Context, projectID, secretID, secretVersion string) ([]byte, error) {

	// Create the client.
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to setup client")
	}
	defer client.Close()

	// Build the request.
	accessRequest := &secretmanagerpb.AccessSecretVersionRequest{
		Name: Name(projectID, secretID, secretVersion),
	}

	// Call the API.
	result, err := client.AccessSecretVersion(ctx, accessRequest)
	if err != nil {
		logrus.WithField("secret", accessRequest.Name).Errorf("failed to access secret version:%+v", err)
		return nil, errors.Wrapf(err, "failed to access secret version %s", accessRequest.Name)
	}

	return result.Payload.Data, nil

}
