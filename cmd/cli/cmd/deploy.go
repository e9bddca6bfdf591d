package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/runvoy/sitedeploy/internal/builder"
	"github.com/runvoy/sitedeploy/internal/client/output"
	"github.com/runvoy/sitedeploy/internal/command"
	"github.com/runvoy/sitedeploy/internal/config"
	"github.com/runvoy/sitedeploy/internal/constants"
	"github.com/runvoy/sitedeploy/internal/deployer"
	"github.com/runvoy/sitedeploy/internal/logger"
	"github.com/runvoy/sitedeploy/internal/providers"
	"github.com/runvoy/sitedeploy/internal/storage"

	"github.com/spf13/cobra"
)

const runIDBytes = 6

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Provision the website bucket, build the application and upload it",
	Long: `Provision (or verify) the S3 website bucket named after DOMAIN_NAME, build the
front-end application and mirror its build output into the bucket.

A bucket created by a run that later fails is deleted again; an existing bucket is never deleted.`,
	Example: fmt.Sprintf(`  - %s deploy
  - %s deploy --config deploy.env --app-dir frontend
  - %s deploy --backend cli --strict-probe
  - CI=true %s deploy --skip-build --report report.yaml`,
		constants.ProjectName, constants.ProjectName, constants.ProjectName, constants.ProjectName),
	RunE: runDeploy,
	Args: cobra.NoArgs,
}

func init() {
	rootCmd.AddCommand(deployCmd)
	addConfigFlag(deployCmd)
	deployCmd.Flags().String("backend", string(constants.SDKBackend), "Storage backend: sdk or cli (aws command)")
	deployCmd.Flags().String("app-dir", ".", "Application directory")
	deployCmd.Flags().String("build-dir", constants.DefaultBuildDir, "Build output directory, relative to --app-dir")
	deployCmd.Flags().String("package-manager", constants.DefaultPackageManager, "Package manager: npm, pnpm, yarn or bun")
	deployCmd.Flags().Int("concurrency", constants.DefaultUploadConcurrency, "Parallel uploads (sdk backend)")
	deployCmd.Flags().Bool("strict-probe", false, "Fail when the bucket existence check is inconclusive")
	deployCmd.Flags().Bool("skip-build", false, "Upload the existing build output without building")
	deployCmd.Flags().String("report", "", "Write a YAML deployment report to this file")
}

func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", constants.DefaultConfigFile, "Deployment configuration file (KEY=value)")
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	opts, err := config.LoadOptions(cmd.Flags())
	if err != nil {
		return err
	}

	service := NewDeployService(NewOutputWrapper(), command.NewExecRunner(slog.Default()), slog.Default())
	return service.Deploy(cmd.Context(), opts)
}

// StorageFactory creates the storage backend for a deployment.
type StorageFactory func(
	ctx context.Context,
	backend constants.StorageBackend,
	dc *config.DeployContext,
	runner command.Runner,
	concurrency int,
	log *slog.Logger,
) (storage.Storage, error)

// DeployService handles the deploy command logic.
type DeployService struct {
	output     OutputInterface
	runner     command.Runner
	newStorage StorageFactory
	buildLog   io.Writer
	logger     *slog.Logger
}

// NewDeployService creates a new DeployService with the given dependencies.
func NewDeployService(out OutputInterface, runner command.Runner, log *slog.Logger) *DeployService {
	return &DeployService{
		output:     out,
		runner:     runner,
		newStorage: providers.NewStorage,
		buildLog:   output.Stderr,
		logger:     log,
	}
}

// Deploy loads the configuration, runs the pipeline and prints the summary.
func (s *DeployService) Deploy(ctx context.Context, opts *config.Options) error {
	set, err := config.LoadFile(opts.ConfigFile)
	if err != nil {
		return err
	}

	dc, err := config.NewDeployContext(set, config.Environment(set))
	if err != nil {
		return err
	}

	ctx = logger.WithRunID(ctx, newRunID())
	logger.DeriveRequestLogger(ctx, s.logger).Info("deployment configured",
		"bucket", dc.Bucket, "region", dc.Region, "credentials", dc.Credentials.String())

	s.output.KeyValue("Bucket", dc.Bucket)
	s.output.KeyValue("Region", dc.Region)
	s.output.KeyValue("Credentials", dc.Credentials.String())
	s.output.KeyValue("Backend", string(opts.Backend))
	s.output.Blank()

	store, err := s.newStorage(ctx, opts.Backend, dc, s.runner, opts.Concurrency, s.logger)
	if err != nil {
		return err
	}

	b := builder.New(s.runner, builder.Options{
		AppDir:         opts.AppDir,
		BuildDir:       opts.BuildDir,
		PackageManager: opts.PackageManager,
		Env:            set,
		Output:         s.buildLog,
	}, s.logger)

	d := deployer.New(store, b, dc, deployer.Options{
		StrictProbe: opts.StrictProbe,
		SkipBuild:   opts.SkipBuild,
	}, s.output, s.logger)

	result, runErr := d.Run(ctx)

	if opts.ReportFile != "" {
		if err = result.WriteReport(opts.ReportFile); err != nil {
			s.output.Warningf("%v", err)
		} else {
			s.output.Infof("Report written to %s", opts.ReportFile)
		}
	}

	if runErr != nil {
		return runErr
	}

	s.printSummary(result)
	return nil
}

func (s *DeployService) printSummary(result *deployer.Result) {
	s.output.Blank()
	if result.Sync != nil {
		s.output.Table(
			[]string{"Uploaded", "Skipped", "Deleted"},
			[][]string{{
				strconv.Itoa(result.Sync.Uploaded),
				strconv.Itoa(result.Sync.Skipped),
				strconv.Itoa(result.Sync.Deleted),
			}},
		)
		s.output.Blank()
	}
	s.output.KeyValue("Bucket created", strconv.FormatBool(result.Created))
	s.output.KeyValue("Duration", output.Duration(result.Duration))
	s.output.Blank()
	s.output.Box("Site published\n" + s.output.Cyan(result.WebsiteURL))
	s.output.Successf("Deployment complete")
}

func newRunID() string {
	b := make([]byte, runIDBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
