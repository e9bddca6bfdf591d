package cmd

import (
	"fmt"
	"strconv"

	"github.com/runvoy/sitedeploy/internal/config"
	"github.com/runvoy/sitedeploy/internal/constants"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the deployment configuration without touching the cloud",
	Example: fmt.Sprintf(`  - %s validate
  - %s validate --config deploy.env`, constants.ProjectName, constants.ProjectName),
	RunE: runValidate,
	Args: cobra.NoArgs,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addConfigFlag(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	opts, err := config.LoadOptions(cmd.Flags())
	if err != nil {
		return err
	}
	return NewValidateService(NewOutputWrapper()).Validate(opts.ConfigFile)
}

// ValidateService handles the validate command logic.
type ValidateService struct {
	output OutputInterface
}

// NewValidateService creates a new ValidateService with the given dependencies.
func NewValidateService(out OutputInterface) *ValidateService {
	return &ValidateService{output: out}
}

// Validate loads the configuration file and prints the deployment context it yields.
func (s *ValidateService) Validate(path string) error {
	set, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	dc, err := config.NewDeployContext(set, config.Environment(set))
	if err != nil {
		return err
	}

	s.output.KeyValue("Bucket", dc.Bucket)
	s.output.KeyValue("Region", dc.Region)
	s.output.KeyValue("CI", strconv.FormatBool(dc.CI))
	s.output.KeyValue("Credentials", dc.Credentials.String())
	s.output.KeyValue("Website URL", dc.WebsiteURL())
	s.output.Blank()
	s.output.Successf("Configuration in %s is valid", path)

	return nil
}
