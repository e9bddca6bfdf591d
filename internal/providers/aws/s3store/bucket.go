package s3store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/logger"
	"github.com/runvoy/sitedeploy/internal/storage"
)

// notFoundCodes are the service error codes meaning the bucket does not exist.
var notFoundCodes = map[string]bool{
	"NotFound":     true,
	"NoSuchBucket": true,
}

// Preflight resolves the caller identity to prove the credentials work.
func (s *Store) Preflight(ctx context.Context) error {
	out, err := s.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return apperrors.ErrCredentials("failed to resolve AWS credentials", err)
	}

	logger.DeriveRequestLogger(ctx, s.logger).Debug("caller identity resolved",
		"account", aws.ToString(out.Account),
		"arn", aws.ToString(out.Arn))

	return nil
}

// BucketExists probes the bucket with HeadBucket.
func (s *Store) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := s.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}

	probeErr := &storage.ProbeError{Bucket: bucket, Cause: err}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if notFoundCodes[apiErr.ErrorCode()] {
			return false, nil
		}
		probeErr.Code = apiErr.ErrorCode()
	}

	return false, probeErr
}

// CreateBucket creates the bucket. us-east-1 is the only region that takes no location constraint.
func (s *Store) CreateBucket(ctx context.Context, bucket, region string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}
	if region != constants.HomeRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	if _, err := s.s3.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// ConfigureWebsite enables static website hosting.
func (s *Store) ConfigureWebsite(ctx context.Context, bucket, indexDocument, errorDocument string) error {
	_, err := s.s3.PutBucketWebsite(ctx, &s3.PutBucketWebsiteInput{
		Bucket: aws.String(bucket),
		WebsiteConfiguration: &types.WebsiteConfiguration{
			IndexDocument: &types.IndexDocument{Suffix: aws.String(indexDocument)},
			ErrorDocument: &types.ErrorDocument{Key: aws.String(errorDocument)},
		},
	})
	if err != nil {
		return fmt.Errorf("put bucket website: %w", err)
	}
	return nil
}

// DisablePublicAccessBlock clears all four public access block flags.
func (s *Store) DisablePublicAccessBlock(ctx context.Context, bucket string) error {
	_, err := s.s3.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(bucket),
		PublicAccessBlockConfiguration: &types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(false),
			IgnorePublicAcls:      aws.Bool(false),
			BlockPublicPolicy:     aws.Bool(false),
			RestrictPublicBuckets: aws.Bool(false),
		},
	})
	if err != nil {
		return fmt.Errorf("put public access block: %w", err)
	}
	return nil
}

// PutBucketPolicy attaches the policy document.
func (s *Store) PutBucketPolicy(ctx context.Context, bucket string, policy []byte) error {
	_, err := s.s3.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(string(policy)),
	})
	if err != nil {
		return fmt.Errorf("put bucket policy: %w", err)
	}
	return nil
}
