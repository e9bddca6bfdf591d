// Package awscli implements storage.Storage by running the AWS command-line interface.
package awscli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/runvoy/sitedeploy/internal/command"
	"github.com/runvoy/sitedeploy/internal/config"
	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/logger"
	"github.com/runvoy/sitedeploy/internal/storage"
)

// Binary is the AWS CLI executable name.
const Binary = "aws"

const publicAccessBlockOff = "BlockPublicAcls=false,IgnorePublicAcls=false," +
	"BlockPublicPolicy=false,RestrictPublicBuckets=false"

// errorCodePattern extracts the service code from "An error occurred (403) when calling ...".
var errorCodePattern = regexp.MustCompile(`An error occurred \(([^)]+)\)`)

// Store runs aws s3 and aws s3api commands.
type Store struct {
	runner command.Runner
	region string
	creds  config.Credentials
	logger *slog.Logger
}

var _ storage.Storage = (*Store)(nil)

// New creates a Store. Every invocation gets --region and the credential arguments appended.
func New(runner command.Runner, region string, creds config.Credentials, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		runner: runner,
		region: region,
		creds:  creds,
		logger: log,
	}
}

func (s *Store) run(ctx context.Context, args ...string) (*command.Result, error) {
	args = append(args, "--region", s.region)
	args = append(args, s.creds.Args()...)
	logger.DeriveRequestLogger(ctx, s.logger).Debug("aws cli", "args", args)
	return s.runner.Run(ctx, command.Cmd{Name: Binary, Args: args})
}

// Preflight checks the aws executable is on PATH.
func (s *Store) Preflight(_ context.Context) error {
	path, err := s.runner.LookPath(Binary)
	if err != nil {
		return apperrors.ErrToolNotFound(Binary, err)
	}
	s.logger.Debug("aws cli found", "path", path)
	return nil
}

// BucketExists runs head-bucket. A 404 means absent; any other failure is a *storage.ProbeError.
func (s *Store) BucketExists(ctx context.Context, bucket string) (bool, error) {
	result, err := s.run(ctx, "s3api", "head-bucket", "--bucket", bucket)
	if err == nil {
		return true, nil
	}

	stderr := ""
	if result != nil {
		stderr = result.Stderr
	}
	var cmdErr *apperrors.CommandError
	if errors.As(err, &cmdErr) {
		stderr = cmdErr.Stderr
	}

	code := serviceErrorCode(stderr)
	if code == "404" || code == "NotFound" || code == "NoSuchBucket" {
		return false, nil
	}

	return false, &storage.ProbeError{Bucket: bucket, Code: code, Cause: err}
}

// CreateBucket runs create-bucket, with a location constraint outside us-east-1.
func (s *Store) CreateBucket(ctx context.Context, bucket, region string) error {
	args := []string{"s3api", "create-bucket", "--bucket", bucket}
	if region != constants.HomeRegion {
		args = append(args, "--create-bucket-configuration", "LocationConstraint="+region)
	}
	_, err := s.run(ctx, args...)
	return err
}

// ConfigureWebsite runs aws s3 website.
func (s *Store) ConfigureWebsite(ctx context.Context, bucket, indexDocument, errorDocument string) error {
	_, err := s.run(ctx, "s3", "website", "s3://"+bucket,
		"--index-document", indexDocument,
		"--error-document", errorDocument)
	return err
}

// DisablePublicAccessBlock runs put-public-access-block with every flag false.
func (s *Store) DisablePublicAccessBlock(ctx context.Context, bucket string) error {
	_, err := s.run(ctx, "s3api", "put-public-access-block", "--bucket", bucket,
		"--public-access-block-configuration", publicAccessBlockOff)
	return err
}

// PutBucketPolicy writes the policy to a temporary file and passes it as file://.
// The file is removed on every path out of this method.
func (s *Store) PutBucketPolicy(ctx context.Context, bucket string, policy []byte) error {
	f, err := os.CreateTemp("", constants.PolicyFilePattern)
	if err != nil {
		return fmt.Errorf("failed to create policy file: %w", err)
	}
	path := f.Name()
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			s.logger.Warn("failed to remove policy file", "path", path, "error", rmErr)
		}
	}()

	_, err = f.Write(policy)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write policy file: %w", err)
	}

	_, err = s.run(ctx, "s3api", "put-bucket-policy", "--bucket", bucket, "--policy", "file://"+path)
	return err
}

// Sync runs aws s3 sync --delete and counts the upload and delete lines it prints.
func (s *Store) Sync(ctx context.Context, dir, bucket string) (*storage.SyncResult, error) {
	result, err := s.run(ctx, "s3", "sync", dir, "s3://"+bucket, "--delete")
	if err != nil {
		return nil, err
	}
	return countSyncOutput(result.Stdout), nil
}

// ForceDeleteBucket runs aws s3 rb --force.
func (s *Store) ForceDeleteBucket(ctx context.Context, bucket string) error {
	_, err := s.run(ctx, "s3", "rb", "s3://"+bucket, "--force")
	return err
}

func serviceErrorCode(stderr string) string {
	if m := errorCodePattern.FindStringSubmatch(stderr); m != nil {
		return m[1]
	}
	return ""
}

func countSyncOutput(stdout string) *storage.SyncResult {
	res := &storage.SyncResult{}
	lines := strings.FieldsFunc(stdout, func(r rune) bool { return r == '\n' || r == '\r' })
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "upload:"):
			res.Uploaded++
		case strings.HasPrefix(line, "delete:"):
			res.Deleted++
		}
	}
	return res
}
