// Package s3store implements storage.Storage on the AWS SDK for Go v2.
package s3store

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/runvoy/sitedeploy/internal/constants"
	"github.com/runvoy/sitedeploy/internal/storage"
)

// S3Client is the subset of the S3 API the store uses.
type S3Client interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(
		ctx context.Context,
		params *s3.CreateBucketInput,
		optFns ...func(*s3.Options),
	) (*s3.CreateBucketOutput, error)
	PutBucketWebsite(
		ctx context.Context,
		params *s3.PutBucketWebsiteInput,
		optFns ...func(*s3.Options),
	) (*s3.PutBucketWebsiteOutput, error)
	PutPublicAccessBlock(
		ctx context.Context,
		params *s3.PutPublicAccessBlockInput,
		optFns ...func(*s3.Options),
	) (*s3.PutPublicAccessBlockOutput, error)
	PutBucketPolicy(
		ctx context.Context,
		params *s3.PutBucketPolicyInput,
		optFns ...func(*s3.Options),
	) (*s3.PutBucketPolicyOutput, error)
	ListObjectsV2(
		ctx context.Context,
		params *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
	ListObjectVersions(
		ctx context.Context,
		params *s3.ListObjectVersionsInput,
		optFns ...func(*s3.Options),
	) (*s3.ListObjectVersionsOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(
		ctx context.Context,
		params *s3.DeleteObjectsInput,
		optFns ...func(*s3.Options),
	) (*s3.DeleteObjectsOutput, error)
	DeleteBucket(
		ctx context.Context,
		params *s3.DeleteBucketInput,
		optFns ...func(*s3.Options),
	) (*s3.DeleteBucketOutput, error)
}

// STSClient is the subset of the STS API used for the credential preflight.
type STSClient interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// Store talks to S3 through the SDK.
type Store struct {
	s3          S3Client
	sts         STSClient
	concurrency int
	logger      *slog.Logger
}

var _ storage.Storage = (*Store)(nil)

// New creates a Store from a loaded SDK configuration.
func New(cfg aws.Config, concurrency int, log *slog.Logger) *Store {
	return NewWithClients(s3.NewFromConfig(cfg), sts.NewFromConfig(cfg), concurrency, log)
}

// NewWithClients creates a Store with the given clients. This is useful for testing.
func NewWithClients(s3Client S3Client, stsClient STSClient, concurrency int, log *slog.Logger) *Store {
	if concurrency < 1 {
		concurrency = constants.DefaultUploadConcurrency
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		s3:          s3Client,
		sts:         stsClient,
		concurrency: concurrency,
		logger:      log,
	}
}
