// Package constants defines global constants used throughout sitedeploy.
package constants

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of sitedeploy.
func GetVersion() *string {
	return &version
}

// ProjectName is the name of the CLI tool
const ProjectName = "sitedeploy"
