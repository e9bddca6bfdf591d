package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/runvoy/sitedeploy/internal/client/output"
	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/logger"

	"github.com/spf13/cobra"
)

var (
	debug         bool
	timeout       string
	timeoutCancel context.CancelFunc
	stopSignals   context.CancelFunc
	closeLog      func() error
	logFile       string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   constants.ProjectName,
	Short: constants.ProjectName,
	Long: fmt.Sprintf(`%s - %s
Publish a static front-end build to an S3 website bucket`,
		constants.ProjectName, *constants.GetVersion()),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		startTime := time.Now().UTC()
		cmd.SetContext(context.WithValue(cmd.Context(), constants.StartTimeCtxKey, startTime))
		printHeader(cmd)

		if verbose {
			output.Infof("CLI build: " + output.Bold(*constants.GetVersion()))
			output.Infof("Verbose output enabled")
		}

		logLevel := slog.LevelWarn
		switch {
		case debug:
			logLevel = slog.LevelDebug
		case verbose:
			logLevel = slog.LevelInfo
		}
		_, closer, err := logger.Initialize(logLevel, logFile)
		if err != nil {
			return apperrors.ErrInvalidConfig("failed to initialize logging", err)
		}
		closeLog = closer

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		stopSignals = stop
		cmd.SetContext(ctx)

		if timeout == "0" {
			if verbose {
				output.Infof("Timeout disabled")
			}

			return nil
		}

		timeoutDuration, err := parseTimeout(timeout)
		if err != nil {
			return apperrors.ErrInvalidConfig("error parsing timeout", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeoutDuration)
		timeoutCancel = cancel // Store for cleanup in Execute()
		cmd.SetContext(ctx)

		if verbose {
			output.Infof("Timeout: %s", timeoutDuration)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		if verbose {
			startTime := getStartTimeFromContext(cmd)
			if !startTime.IsZero() {
				output.Infof("Time elapsed: %s", output.Bold(output.Duration(time.Since(startTime))))
			}
		}
	},
}

// Execute runs the root command, releases the run's resources and exits with the status
// derived from the error.
func Execute() {
	err := rootCmd.Execute()
	cleanup()

	if err != nil {
		output.Errorf("%v", err)
	}
	if code := apperrors.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}

func cleanup() {
	if timeoutCancel != nil {
		timeoutCancel()
	}
	if stopSignals != nil {
		stopSignals()
	}
	if closeLog != nil {
		if err := closeLog(); err != nil {
			output.Warningf("failed to close log file: %v", err)
		}
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "0",
		"Timeout for the whole run (e.g., 10m, 30s, 1h); 0 disables it")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debugging logs")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write a JSON log transcript to this file")
}

// parseTimeout parses timeout string to time.Duration
// Supports formats: "10m", "30s", "1h", "600s" (number of seconds)
func parseTimeout(timeoutStr string) (time.Duration, error) {
	if timeoutStr == "" {
		return 0, errors.New("timeout must not be empty")
	}

	// Try parsing as duration first (supports "10m", "30s", "1h", etc.)
	duration, err := time.ParseDuration(timeoutStr)
	if err == nil {
		if duration <= 0 {
			return 0, fmt.Errorf("timeout must be positive: %s", timeoutStr)
		}
		return duration, nil
	}

	// If duration parsing fails, try parsing as seconds (integer)
	seconds, err := strconv.Atoi(timeoutStr)
	if err != nil || seconds <= 0 {
		errMsg := fmt.Sprintf(
			"invalid timeout format: %s (use duration like '10m' or '30s', or seconds like '600')",
			timeoutStr)
		return 0, errors.New(errMsg)
	}

	return time.Duration(seconds) * time.Second, nil
}

func printHeader(cmd *cobra.Command) {
	output.Header(output.Bold("🚀 " + constants.ProjectName + " " + cmd.CalledAs()))
}

func getStartTimeFromContext(cmd *cobra.Command) time.Time {
	startTime, ok := cmd.Context().Value(constants.StartTimeCtxKey).(time.Time)
	if !ok {
		return time.Time{}
	}
	return startTime
}

// RootCmd returns the root command for use by tools like doc generators.
func RootCmd() *cobra.Command {
	return rootCmd
}
