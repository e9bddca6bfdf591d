// Package providers selects the storage backend for a deployment.
package providers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runvoy/sitedeploy/internal/command"
	"github.com/runvoy/sitedeploy/internal/config"
	awsconfig "github.com/runvoy/sitedeploy/internal/config/aws"
	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/providers/aws/awscli"
	"github.com/runvoy/sitedeploy/internal/providers/aws/s3store"
	"github.com/runvoy/sitedeploy/internal/storage"
)

// NewStorage returns the backend named by backend, bound to the region and credentials of dc.
func NewStorage(
	ctx context.Context,
	backend constants.StorageBackend,
	dc *config.DeployContext,
	runner command.Runner,
	concurrency int,
	log *slog.Logger,
) (storage.Storage, error) {
	if log == nil {
		log = slog.Default()
	}

	switch backend {
	case constants.SDKBackend:
		cfg, err := awsconfig.LoadSDKConfig(ctx, dc.Region, dc.Credentials.Profile)
		if err != nil {
			return nil, apperrors.ErrCredentials("failed to load AWS configuration", err)
		}
		return s3store.New(cfg, concurrency, log.With("backend", string(backend))), nil
	case constants.CLIBackend:
		return awscli.New(runner, dc.Region, dc.Credentials, log.With("backend", string(backend))), nil
	default:
		return nil, apperrors.ErrInvalidConfig(fmt.Sprintf("unknown storage backend %q", backend), nil)
	}
}
