// Package storage defines the cloud storage surface the deployment pipeline needs:
// bucket probing, provisioning, website configuration, mirrored upload and forced deletion.
package storage

import (
	"context"
	"fmt"
)

// Storage is implemented by the SDK and the CLI backends.
type Storage interface {
	// Preflight checks that the backend can reach the cloud with the selected credentials.
	Preflight(ctx context.Context) error
	// BucketExists reports whether the bucket exists and is reachable. A failure other than
	// "not found" is returned as a *ProbeError.
	BucketExists(ctx context.Context, bucket string) (bool, error)
	// CreateBucket creates the bucket, with a location constraint unless region is us-east-1.
	CreateBucket(ctx context.Context, bucket, region string) error
	// ConfigureWebsite enables static website hosting with the given index and error documents.
	ConfigureWebsite(ctx context.Context, bucket, indexDocument, errorDocument string) error
	// DisablePublicAccessBlock clears all four public access block flags.
	DisablePublicAccessBlock(ctx context.Context, bucket string) error
	// PutBucketPolicy attaches the JSON policy document to the bucket.
	PutBucketPolicy(ctx context.Context, bucket string, policy []byte) error
	// Sync mirrors dir into the bucket: new and changed files are uploaded and objects with
	// no local counterpart are deleted.
	Sync(ctx context.Context, dir, bucket string) (*SyncResult, error)
	// ForceDeleteBucket deletes every object, version and delete marker, then the bucket.
	ForceDeleteBucket(ctx context.Context, bucket string) error
}

// SyncResult counts what a Sync did. Skipped stays zero for the CLI backend, which does not
// report unchanged files.
type SyncResult struct {
	Uploaded int `yaml:"uploaded"`
	Skipped  int `yaml:"skipped"`
	Deleted  int `yaml:"deleted"`
}

// ProbeError is an existence probe that failed for a reason other than the bucket being absent
// (access denied, network, throttling).
type ProbeError struct {
	Bucket string
	// Code is the service error code when one is known.
	Code  string
	Cause error
}

func (e *ProbeError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("probe of bucket %s failed (%s): %v", e.Bucket, e.Code, e.Cause)
	}
	return fmt.Sprintf("probe of bucket %s failed: %v", e.Bucket, e.Cause)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}
