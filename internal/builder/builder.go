// Package builder runs the front-end build with the project's package manager.
package builder

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runvoy/sitedeploy/internal/command"
	"github.com/runvoy/sitedeploy/internal/config"
	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/logger"
)

// Options configures a Builder.
type Options struct {
	// AppDir is the application directory, used as the working directory.
	AppDir string
	// BuildDir is the output directory relative to AppDir.
	BuildDir string
	// PackageManager is the package manager executable, npm by default.
	PackageManager string
	// Env is appended to the process environment of every build command.
	Env config.Set
	// Output receives the live output of the build commands; nil discards it.
	Output io.Writer
}

// Builder installs dependencies when needed and runs the build script.
type Builder struct {
	runner command.Runner
	opts   Options
	logger *slog.Logger
}

// New creates a Builder.
func New(runner command.Runner, opts Options, log *slog.Logger) *Builder {
	if opts.PackageManager == "" {
		opts.PackageManager = constants.DefaultPackageManager
	}
	if opts.BuildDir == "" {
		opts.BuildDir = constants.DefaultBuildDir
	}
	if opts.AppDir == "" {
		opts.AppDir = "."
	}
	if log == nil {
		log = slog.Default()
	}
	return &Builder{runner: runner, opts: opts, logger: log}
}

// Preflight checks the package manager is on PATH.
func (b *Builder) Preflight(_ context.Context) error {
	if _, err := b.runner.LookPath(b.opts.PackageManager); err != nil {
		return apperrors.ErrToolNotFound(b.opts.PackageManager, err)
	}
	return nil
}

// OutputDir returns where the build writes its output. It is not checked here.
func (b *Builder) OutputDir() string {
	return filepath.Join(b.opts.AppDir, b.opts.BuildDir)
}

// Build runs "<pm> install" when the dependency directory is absent, then "<pm> run build".
func (b *Builder) Build(ctx context.Context) error {
	log := logger.DeriveRequestLogger(ctx, b.logger).With("app_dir", b.opts.AppDir)

	needsInstall, err := b.needsInstall()
	if err != nil {
		return apperrors.ErrBuildFailed(err)
	}

	if needsInstall {
		log.Info("installing dependencies", "package_manager", b.opts.PackageManager)
		if err = b.run(ctx, "install"); err != nil {
			return apperrors.ErrBuildFailed(err)
		}
	} else {
		log.Debug("dependencies present, skipping install")
	}

	log.Info("running build", "package_manager", b.opts.PackageManager)
	if err = b.run(ctx, "run", "build"); err != nil {
		return apperrors.ErrBuildFailed(err)
	}

	return nil
}

func (b *Builder) needsInstall() (bool, error) {
	_, err := os.Stat(filepath.Join(b.opts.AppDir, constants.DependencyCacheDir))
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}

func (b *Builder) run(ctx context.Context, args ...string) error {
	_, err := b.runner.Run(ctx, command.Cmd{
		Name:   b.opts.PackageManager,
		Args:   args,
		Dir:    b.opts.AppDir,
		Env:    append(os.Environ(), b.opts.Env.Environ()...),
		Stdout: b.opts.Output,
		Stderr: b.opts.Output,
	})
	return err
}
