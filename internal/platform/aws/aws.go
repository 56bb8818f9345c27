// Package aws loads the shared AWS SDK configuration once at startup.
package aws

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"ppe_backend/internal/platform/config"
)

// LoadConfig resolves credentials and region through the default provider chain
// (environment, shared config, instance role). The returned aws.Config is passed
// explicitly to every client constructor.
func LoadConfig(ctx context.Context, props config.AWSProperties, httpClient *http.Client) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithHTTPClient(httpClient),
	}
	if props.Region != "" {
		opts = append(opts, awsconfig.WithRegion(props.Region))
	}
	if props.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(props.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}
