package s3store

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// mockS3Client is a mock implementation of S3Client. Calls records the operation names in order.
//
//nolint:dupl // Mock struct must match interface signature
type mockS3Client struct {
	mu    sync.Mutex
	calls []string

	headBucketFunc func(
		ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options),
	) (*s3.HeadBucketOutput, error)
	createBucketFunc func(
		ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options),
	) (*s3.CreateBucketOutput, error)
	putBucketWebsiteFunc func(
		ctx context.Context, params *s3.PutBucketWebsiteInput, optFns ...func(*s3.Options),
	) (*s3.PutBucketWebsiteOutput, error)
	putPublicAccessBlockFunc func(
		ctx context.Context, params *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options),
	) (*s3.PutPublicAccessBlockOutput, error)
	putBucketPolicyFunc func(
		ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options),
	) (*s3.PutBucketPolicyOutput, error)
	listObjectsV2Func func(
		ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
	listObjectVersionsFunc func(
		ctx context.Context, params *s3.ListObjectVersionsInput, optFns ...func(*s3.Options),
	) (*s3.ListObjectVersionsOutput, error)
	putObjectFunc func(
		ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
	deleteObjectsFunc func(
		ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options),
	) (*s3.DeleteObjectsOutput, error)
	deleteBucketFunc func(
		ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options),
	) (*s3.DeleteBucketOutput, error)
}

var errNotImplemented = errors.New("not implemented")

func (m *mockS3Client) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, op)
}

func (m *mockS3Client) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockS3Client) HeadBucket(
	ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options),
) (*s3.HeadBucketOutput, error) {
	m.record("HeadBucket")
	if m.headBucketFunc != nil {
		return m.headBucketFunc(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}

func (m *mockS3Client) CreateBucket(
	ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options),
) (*s3.CreateBucketOutput, error) {
	m.record("CreateBucket")
	if m.createBucketFunc != nil {
		return m.createBucketFunc(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}

func (m *mockS3Client) PutBucketWebsite(
	ctx context.Context, params *s3.PutBucketWebsiteInput, optFns ...func(*s3.Options),
) (*s3.PutBucketWebsiteOutput, error) {
	m.record("PutBucketWebsite")
	if m.putBucketWebsiteFunc != nil {
		return m.putBucketWebsiteFunc(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}

func (m *mockS3Client) PutPublicAccessBlock(
	ctx context.Context, params *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options),
) (*s3.PutPublicAccessBlockOutput, error) {
	m.record("PutPublicAccessBlock")
	if m.putPublicAccessBlockFunc != nil {
		return m.putPublicAccessBlockFunc(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}

func (m *mockS3Client) PutBucketPolicy(
	ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options),
) (*s3.PutBucketPolicyOutput, error) {
	m.record("PutBucketPolicy")
	if m.putBucketPolicyFunc != nil {
		return m.putBucketPolicyFunc(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}

func (m *mockS3Client) ListObjectsV2(
	ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	m.record("ListObjectsV2")
	if m.listObjectsV2Func != nil {
		return m.listObjectsV2Func(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}

func (m *mockS3Client) ListObjectVersions(
	ctx context.Context, params *s3.ListObjectVersionsInput, optFns ...func(*s3.Options),
) (*s3.ListObjectVersionsOutput, error) {
	m.record("ListObjectVersions")
	if m.listObjectVersionsFunc != nil {
		return m.listObjectVersionsFunc(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}

func (m *mockS3Client) PutObject(
	ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	m.record("PutObject")
	if m.putObjectFunc != nil {
		return m.putObjectFunc(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}

func (m *mockS3Client) DeleteObjects(
	ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options),
) (*s3.DeleteObjectsOutput, error) {
	m.record("DeleteObjects")
	if m.deleteObjectsFunc != nil {
		return m.deleteObjectsFunc(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}

func (m *mockS3Client) DeleteBucket(
	ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options),
) (*s3.DeleteBucketOutput, error) {
	m.record("DeleteBucket")
	if m.deleteBucketFunc != nil {
		return m.deleteBucketFunc(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}

// mockSTSClient is a mock implementation of STSClient.
type mockSTSClient struct {
	getCallerIdentityFunc func(
		ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

func (m *mockSTSClient) GetCallerIdentity(
	ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options),
) (*sts.GetCallerIdentityOutput, error) {
	if m.getCallerIdentityFunc != nil {
		return m.getCallerIdentityFunc(ctx, params, optFns...)
	}
	return nil, errNotImplemented
}
