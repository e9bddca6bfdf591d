// Package deployer runs the deployment pipeline: preflight, bucket provisioning, build,
// upload and, when a run fails after creating its bucket, rollback.
package deployer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/runvoy/sitedeploy/internal/bucket"
	"github.com/runvoy/sitedeploy/internal/config"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/logger"
	"github.com/runvoy/sitedeploy/internal/storage"
)

// pipelineSteps is the number of numbered steps reported to the user.
const pipelineSteps = 4

// Builder produces the static build output.
type Builder interface {
	Preflight(ctx context.Context) error
	Build(ctx context.Context) error
	OutputDir() string
}

// Reporter receives user-facing progress messages.
type Reporter interface {
	Step(step, total int, message string)
	StepSuccess(step, total int, message string)
	StepError(step, total int, message string)
	Infof(format string, a ...any)
	Warningf(format string, a ...any)
	Errorf(format string, a ...any)
}

// Options tunes a run.
type Options struct {
	// StrictProbe makes an inconclusive existence probe fatal instead of attempting creation.
	StrictProbe bool
	// SkipBuild uploads the existing build output without running the build.
	SkipBuild bool
}

// Deployer runs one deployment for one DeployContext.
type Deployer struct {
	store    storage.Storage
	builder  Builder
	dc       *config.DeployContext
	opts     Options
	reporter Reporter
	logger   *slog.Logger
	now      func() time.Time
}

// runState is the mutable state of a single run.
type runState struct {
	// created is set once CreateBucket succeeds and never reset.
	created   bool
	succeeded bool
}

// New creates a Deployer.
func New(
	store storage.Storage,
	builder Builder,
	dc *config.DeployContext,
	opts Options,
	reporter Reporter,
	log *slog.Logger,
) *Deployer {
	if log == nil {
		log = slog.Default()
	}
	return &Deployer{
		store:    store,
		builder:  builder,
		dc:       dc,
		opts:     opts,
		reporter: reporter,
		logger:   log.With("bucket", dc.Bucket, "region", dc.Region),
		now:      time.Now,
	}
}

// Run executes the pipeline. The returned Result is never nil and describes the run even
// when it failed. When the run fails after creating the bucket, the bucket is deleted;
// a rollback failure is joined to the original error.
func (d *Deployer) Run(ctx context.Context) (result *Result, err error) {
	log := logger.DeriveRequestLogger(ctx, d.logger)
	start := d.now()
	state := &runState{}
	result = &Result{
		Bucket:      d.dc.Bucket,
		Region:      d.dc.Region,
		Credentials: d.dc.Credentials.String(),
		StartedAt:   start.UTC(),
	}

	log.Debug("deployment started", logger.GetDeadlineInfo(ctx)...)

	defer func() {
		if !state.succeeded && state.created {
			rbErr := d.rollback(ctx)
			result.RolledBack = rbErr == nil
			err = errors.Join(err, rbErr)
		}
		result.Created = state.created
		result.Duration = d.now().Sub(start)
		if err != nil {
			result.Error = err.Error()
		}
	}()

	if err = d.preflight(ctx); err != nil {
		return result, err
	}

	policy, err := bucket.PolicyDocument(d.dc.Bucket, d.dc.Region)
	if err != nil {
		return result, apperrors.ErrInvalidConfig("failed to render bucket policy", err)
	}

	d.reporter.Step(1, pipelineSteps, "Provisioning bucket "+d.dc.Bucket)
	if err = d.provision(ctx, state, policy); err != nil {
		d.reporter.StepError(1, pipelineSteps, "Provisioning failed")
		return result, err
	}
	d.reporter.StepSuccess(1, pipelineSteps, "Bucket ready")

	if d.opts.SkipBuild {
		d.reporter.Infof("Skipping build, using existing output in %s", d.builder.OutputDir())
	} else {
		d.reporter.Step(2, pipelineSteps, "Building application")
		if err = d.builder.Build(ctx); err != nil {
			d.reporter.StepError(2, pipelineSteps, "Build failed")
			return result, err
		}
		d.reporter.StepSuccess(2, pipelineSteps, "Build complete")
	}

	d.reporter.Step(3, pipelineSteps, "Uploading build output")
	synced, err := d.upload(ctx)
	if err != nil {
		d.reporter.StepError(3, pipelineSteps, "Upload failed")
		return result, err
	}
	result.Sync = synced
	d.reporter.StepSuccess(3, pipelineSteps,
		fmt.Sprintf("Uploaded %d, deleted %d", synced.Uploaded, synced.Deleted))

	state.succeeded = true
	result.WebsiteURL = d.dc.WebsiteURL()
	d.reporter.StepSuccess(4, pipelineSteps, "Website available at "+result.WebsiteURL)
	log.Info("deployment finished", "url", result.WebsiteURL)

	return result, nil
}

// preflight checks credentials and tools before any mutating call.
func (d *Deployer) preflight(ctx context.Context) error {
	if err := d.store.Preflight(ctx); err != nil {
		if apperrors.GetErrorCode(err) == "" {
			return apperrors.ErrCredentials("storage preflight failed", err)
		}
		return err
	}
	if d.opts.SkipBuild {
		return nil
	}
	return d.builder.Preflight(ctx)
}

// upload verifies the build output directory exists, then mirrors it into the bucket.
func (d *Deployer) upload(ctx context.Context) (*storage.SyncResult, error) {
	dir := d.builder.OutputDir()

	info, err := os.Stat(dir)
	if err != nil {
		return nil, apperrors.ErrBuildOutputMissing(dir, err)
	}
	if !info.IsDir() {
		return nil, apperrors.ErrBuildOutputMissing(dir, errors.New("not a directory"))
	}

	res, err := d.store.Sync(ctx, dir, d.dc.Bucket)
	if err != nil {
		return nil, apperrors.ErrSyncFailed(d.dc.Bucket, err)
	}
	return res, nil
}
