package deployer

import (
	"context"
	"errors"

	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/logger"
	"github.com/runvoy/sitedeploy/internal/storage"
)

// provision makes sure the bucket exists and serves the website publicly. Creation happens
// only when the probe did not find the bucket; every later step runs on every deployment.
func (d *Deployer) provision(ctx context.Context, state *runState, policy []byte) error {
	log := logger.DeriveRequestLogger(ctx, d.logger).With("step", "provision")
	name := d.dc.Bucket

	exists, err := d.store.BucketExists(ctx, name)
	if err != nil {
		var probeErr *storage.ProbeError
		if !errors.As(err, &probeErr) || d.opts.StrictProbe {
			return apperrors.ErrProbeFailed(name, err)
		}
		log.Warn("bucket probe inconclusive, attempting creation", "error", err)
		d.reporter.Warningf("Could not confirm whether bucket %s exists (%v), attempting to create it", name, err)
		if d.dc.Region == constants.HomeRegion {
			// CreateBucket succeeds on an already owned bucket in us-east-1, so a failed run
			// would roll back a bucket it did not create.
			d.reporter.Warningf("In %s an existing bucket you own cannot be told apart from a new one; "+
				"a failed run will delete bucket %s. Use --strict-probe to stop instead", constants.HomeRegion, name)
		}
	}

	if exists {
		d.reporter.Infof("Bucket %s already exists", name)
	} else {
		log.Info("creating bucket")
		if err = d.store.CreateBucket(ctx, name, d.dc.Region); err != nil {
			return apperrors.ErrCreateBucket(name, err)
		}
		state.created = true
		d.reporter.Infof("Created bucket %s in %s", name, d.dc.Region)
	}

	if err = d.store.ConfigureWebsite(ctx, name, constants.IndexDocument, constants.IndexDocument); err != nil {
		return apperrors.ErrWebsiteConfig(name, err)
	}
	log.Debug("website hosting configured")

	if err = d.store.DisablePublicAccessBlock(ctx, name); err != nil {
		return apperrors.ErrPublicAccess(name, err)
	}
	log.Debug("public access block cleared")

	if err = d.store.PutBucketPolicy(ctx, name, policy); err != nil {
		return apperrors.ErrBucketPolicy(name, err)
	}
	log.Debug("public read policy applied")

	return nil
}

// rollback deletes the bucket this run created. It ignores cancellation of ctx so an
// interrupted run still cleans up.
func (d *Deployer) rollback(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	log := logger.DeriveRequestLogger(ctx, d.logger).With("step", "rollback")

	d.reporter.Warningf("Deployment failed, deleting bucket %s created by this run", d.dc.Bucket)
	log.Warn("rolling back")

	if err := d.store.ForceDeleteBucket(ctx, d.dc.Bucket); err != nil {
		log.Error("rollback failed", "error", err)
		d.reporter.Errorf("Rollback failed, bucket %s must be deleted manually: %v", d.dc.Bucket, err)
		return apperrors.ErrRollbackFailed(d.dc.Bucket, err)
	}

	d.reporter.Infof("Rolled back: bucket %s deleted", d.dc.Bucket)
	return nil
}
