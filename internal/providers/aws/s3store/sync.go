package s3store

import (
	"context"
	"crypto/md5" //nolint:gosec // S3 ETags of single-part uploads are MD5 digests
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"github.com/runvoy/sitedeploy/internal/constants"
	"github.com/runvoy/sitedeploy/internal/logger"
	"github.com/runvoy/sitedeploy/internal/storage"
)

const defaultContentType = "application/octet-stream"

type remoteObject struct {
	size int64
	etag string
}

type localFile struct {
	key  string
	path string
	size int64
}

// Sync mirrors dir into the bucket the way `aws s3 sync --delete` does: files whose size
// or content digest differ from the remote object are uploaded, remote keys with no local
// file are deleted. Uploads run concurrently up to the store's concurrency limit.
func (s *Store) Sync(ctx context.Context, dir, bucket string) (*storage.SyncResult, error) {
	log := logger.DeriveRequestLogger(ctx, s.logger).With("bucket", bucket)

	remote, err := s.listRemote(ctx, bucket)
	if err != nil {
		return nil, err
	}

	local, err := walkLocal(dir)
	if err != nil {
		return nil, err
	}

	log.Debug("sync plan", "local_files", len(local), "remote_objects", len(remote))

	var uploaded, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, file := range local {
		existing, found := remote[file.key]
		g.Go(func() error {
			if found && existing.size == file.size {
				sum, sumErr := fileMD5(file.path)
				if sumErr != nil {
					return sumErr
				}
				if sum == existing.etag {
					skipped.Add(1)
					return nil
				}
			}

			if upErr := s.upload(gctx, bucket, file); upErr != nil {
				return upErr
			}
			uploaded.Add(1)
			log.Debug("uploaded", "key", file.key, "size", file.size)
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	stale := make([]string, 0)
	for key := range remote {
		if _, ok := local[key]; !ok {
			stale = append(stale, key)
		}
	}
	slices.Sort(stale)

	if err = s.deleteKeys(ctx, bucket, stale); err != nil {
		return nil, err
	}

	return &storage.SyncResult{
		Uploaded: int(uploaded.Load()),
		Skipped:  int(skipped.Load()),
		Deleted:  len(stale),
	}, nil
}

func (s *Store) listRemote(ctx context.Context, bucket string) (map[string]remoteObject, error) {
	remote := make(map[string]remoteObject)

	paginator := s3.NewListObjectsV2Paginator(s.s3, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for i := range page.Contents {
			obj := &page.Contents[i]
			if obj.Key == nil {
				continue
			}
			remote[*obj.Key] = remoteObject{
				size: aws.ToInt64(obj.Size),
				etag: strings.Trim(aws.ToString(obj.ETag), `"`),
			}
		}
	}

	return remote, nil
}

// walkLocal indexes the regular files under dir by object key.
func walkLocal(dir string) (map[string]localFile, error) {
	files := make(map[string]localFile)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		files[key] = localFile{key: key, path: path, size: info.Size()}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	return files, nil
}

func (s *Store) upload(ctx context.Context, bucket string, file localFile) error {
	f, err := os.Open(file.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file.path, err)
	}
	defer func() { _ = f.Close() }()

	_, err = s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(file.key),
		Body:          f,
		ContentLength: aws.Int64(file.size),
		ContentType:   aws.String(contentType(file.path)),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", file.key, err)
	}
	return nil
}

func (s *Store) deleteKeys(ctx context.Context, bucket string, keys []string) error {
	ids := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, types.ObjectIdentifier{Key: aws.String(key)})
	}
	return s.deleteInBatches(ctx, bucket, ids)
}

func (s *Store) deleteInBatches(ctx context.Context, bucket string, ids []types.ObjectIdentifier) error {
	for batch := range slices.Chunk(ids, constants.DeleteObjectsBatchSize) {
		out, err := s.s3.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{
				Objects: batch,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to delete objects batch: %w", err)
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return fmt.Errorf("failed to delete %d objects, first %s: %s",
				len(out.Errors), aws.ToString(first.Key), aws.ToString(first.Message))
		}
		logger.DeriveRequestLogger(ctx, s.logger).Debug("deleted objects batch", "bucket", bucket, "count", len(batch))
	}
	return nil
}

// contentType guesses from the extension first, then from the file content.
func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return defaultContentType
	}
	return mt.String()
}

func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := md5.New() //nolint:gosec // see import
	if _, err = io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
