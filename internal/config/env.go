package config

import (
	"fmt"

	"github.com/runvoy/sitedeploy/internal/constants"

	"github.com/caarlos0/env/v11"
)

// ciIndicators are the variables CI runners set to announce themselves.
type ciIndicators struct {
	CI            string `env:"CI"`
	GitHubActions string `env:"GITHUB_ACTIONS"`
}

// DetectCI reports whether the environment belongs to a CI runner: CI or GITHUB_ACTIONS
// set to the literal "true".
func DetectCI(environ map[string]string) (bool, error) {
	var ind ciIndicators
	if err := env.ParseWithOptions(&ind, env.Options{Environment: environ}); err != nil {
		return false, fmt.Errorf("failed to parse CI indicators: %w", err)
	}

	return ind.CI == constants.CITrueValue || ind.GitHubActions == constants.CITrueValue, nil
}
