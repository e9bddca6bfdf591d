// Package main implements the sitedeploy CLI tool.
// It publishes a static front-end build to an S3 website bucket.
package main

import "github.com/runvoy/sitedeploy/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
