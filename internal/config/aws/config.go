// Package aws contains AWS-specific configuration helpers for sitedeploy.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
)

// LoadOptions returns the SDK load options for a region and credential mode.
// An empty profile leaves credential resolution to the environment (CI runners).
func LoadOptions(region, profile string) []func(*awsConfig.LoadOptions) error {
	var opts []func(*awsConfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsConfig.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, awsConfig.WithSharedConfigProfile(profile))
	}
	return opts
}

// LoadSDKConfig loads the AWS SDK configuration for a region and credential mode.
func LoadSDKConfig(ctx context.Context, region, profile string) (aws.Config, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, LoadOptions(region, profile)...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS SDK configuration: %w", err)
	}
	return awsCfg, nil
}
