package deployer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runvoy/sitedeploy/internal/constants"
	"github.com/runvoy/sitedeploy/internal/storage"
)

// Result describes a finished run, successful or not.
type Result struct {
	Bucket      string              `yaml:"bucket"`
	Region      string              `yaml:"region"`
	Credentials string              `yaml:"credentials"`
	Created     bool                `yaml:"created"`
	RolledBack  bool                `yaml:"rolled_back,omitempty"`
	Sync        *storage.SyncResult `yaml:"sync,omitempty"`
	WebsiteURL  string              `yaml:"website_url,omitempty"`
	StartedAt   time.Time           `yaml:"started_at"`
	Duration    time.Duration       `yaml:"duration"`
	Error       string              `yaml:"error,omitempty"`
}

// Succeeded reports whether the run finished without error.
func (r *Result) Succeeded() bool {
	return r.Error == ""
}

// WriteReport writes the result as YAML to path.
func (r *Result) WriteReport(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err = os.WriteFile(filepath.Clean(path), data, constants.ReportFilePermissions); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
