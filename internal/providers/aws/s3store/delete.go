package s3store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/runvoy/sitedeploy/internal/logger"
)

// ForceDeleteBucket deletes all object versions, delete markers and objects, then the bucket.
func (s *Store) ForceDeleteBucket(ctx context.Context, bucket string) error {
	logger.DeriveRequestLogger(ctx, s.logger).Info("deleting bucket", "bucket", bucket)

	if err := s.deleteAllObjectVersions(ctx, bucket); err != nil {
		return fmt.Errorf("failed to delete object versions: %w", err)
	}

	if err := s.deleteAllObjects(ctx, bucket); err != nil {
		return fmt.Errorf("failed to delete objects: %w", err)
	}

	if _, err := s.s3.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(bucket),
	}); err != nil {
		return fmt.Errorf("failed to delete bucket: %w", err)
	}

	return nil
}

func versionIdentifiers(out *s3.ListObjectVersionsOutput) []types.ObjectIdentifier {
	ids := make([]types.ObjectIdentifier, 0, len(out.Versions)+len(out.DeleteMarkers))
	for i := range out.Versions {
		v := &out.Versions[i]
		if v.Key != nil && v.VersionId != nil {
			ids = append(ids, types.ObjectIdentifier{Key: v.Key, VersionId: v.VersionId})
		}
	}
	for i := range out.DeleteMarkers {
		m := &out.DeleteMarkers[i]
		if m.Key != nil && m.VersionId != nil {
			ids = append(ids, types.ObjectIdentifier{Key: m.Key, VersionId: m.VersionId})
		}
	}
	return ids
}

func (s *Store) deleteAllObjectVersions(ctx context.Context, bucket string) error {
	input := &s3.ListObjectVersionsInput{Bucket: aws.String(bucket)}

	for {
		out, err := s.s3.ListObjectVersions(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to list object versions: %w", err)
		}

		if err = s.deleteInBatches(ctx, bucket, versionIdentifiers(out)); err != nil {
			return err
		}

		if !aws.ToBool(out.IsTruncated) {
			return nil
		}
		input.KeyMarker = out.NextKeyMarker
		input.VersionIdMarker = out.NextVersionIdMarker
	}
}

func (s *Store) deleteAllObjects(ctx context.Context, bucket string) error {
	paginator := s3.NewListObjectsV2Paginator(s.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list objects: %w", err)
		}

		ids := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for i := range page.Contents {
			if key := page.Contents[i].Key; key != nil {
				ids = append(ids, types.ObjectIdentifier{Key: key})
			}
		}
		if err = s.deleteInBatches(ctx, bucket, ids); err != nil {
			return err
		}
	}
	return nil
}
