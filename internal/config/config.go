// Package config manages configuration for sitedeploy.
// Deployment settings come from a key=value file; CLI options are layered with Viper from
// flags, SITEDEPLOY_* environment variables and defaults.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Options holds the CLI options of a deployment run.
type Options struct {
	ConfigFile     string                   `mapstructure:"config" validate:"required"`
	Backend        constants.StorageBackend `mapstructure:"backend" validate:"oneof=sdk cli"`
	AppDir         string                   `mapstructure:"app_dir" validate:"required"`
	BuildDir       string                   `mapstructure:"build_dir" validate:"required"`
	PackageManager string                   `mapstructure:"package_manager" validate:"oneof=npm pnpm yarn bun"`
	Concurrency    int                      `mapstructure:"concurrency" validate:"min=1"`
	StrictProbe    bool                     `mapstructure:"strict_probe"`
	SkipBuild      bool                     `mapstructure:"skip_build"`
	ReportFile     string                   `mapstructure:"report"`
}

var validate = validator.New()

// optionFlags maps option keys to the flag names that set them.
var optionFlags = map[string]string{
	"config":          "config",
	"backend":         "backend",
	"app_dir":         "app-dir",
	"build_dir":       "build-dir",
	"package_manager": "package-manager",
	"concurrency":     "concurrency",
	"strict_probe":    "strict-probe",
	"skip_build":      "skip-build",
	"report":          "report",
}

// LoadOptions resolves the CLI options from the given flags, SITEDEPLOY_* environment
// variables and defaults, in that order of precedence.
// Flags missing from the set are skipped, so subcommands can define a subset.
func LoadOptions(flags *pflag.FlagSet) (*Options, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, name := range optionFlags {
		if flags == nil {
			break
		}
		if flag := flags.Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return nil, apperrors.ErrInvalidConfig("error unmarshaling options", err)
	}

	opts.Backend = constants.StorageBackend(strings.ToLower(strings.TrimSpace(string(opts.Backend))))

	if err := validate.Struct(&opts); err != nil {
		return nil, apperrors.ErrInvalidConfig("options validation failed", err)
	}

	slog.Debug("options loaded",
		"config", opts.ConfigFile,
		"backend", opts.Backend,
		"app_dir", opts.AppDir,
		"build_dir", opts.BuildDir)

	return &opts, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", constants.DefaultConfigFile)
	v.SetDefault("backend", string(constants.SDKBackend))
	v.SetDefault("app_dir", ".")
	v.SetDefault("build_dir", constants.DefaultBuildDir)
	v.SetDefault("package_manager", constants.DefaultPackageManager)
	v.SetDefault("concurrency", constants.DefaultUploadConcurrency)
	v.SetDefault("strict_probe", false)
	v.SetDefault("skip_build", false)
	v.SetDefault("report", "")
}
