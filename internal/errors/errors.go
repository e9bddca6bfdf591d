// Package errors provides error types and handling for sitedeploy.
// Every failure carries an error code and the pipeline phase it happened in; the process
// exit status is derived from the error once, at the top of the CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/runvoy/sitedeploy/internal/constants"
)

// DeployError represents a deployment failure with a code and the pipeline phase it belongs to.
type DeployError struct {
	// Code is an error code string for programmatic handling
	Code string
	// Message is a user-friendly error message
	Message string
	// Phase tells whether any mutating cloud call could have happened before the failure
	Phase constants.Phase
	// Cause is the underlying error (for error wrapping)
	Cause error
}

// Error implements the error interface.
func (e *DeployError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *DeployError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is to work with DeployError.
func (e *DeployError) Is(target error) bool {
	if t, ok := target.(*DeployError); ok {
		return e.Code != "" && e.Code == t.Code
	}
	return false
}

// Predefined error codes.
const (
	// Pre-provisioning error codes.
	ErrCodeConfigNotFound    = "CONFIG_NOT_FOUND"
	ErrCodeInvalidConfig     = "INVALID_CONFIG"
	ErrCodeMissingVariables  = "MISSING_VARIABLES"
	ErrCodeInvalidBucketName = "INVALID_BUCKET_NAME"
	ErrCodeToolNotFound      = "TOOL_NOT_FOUND"
	ErrCodeCredentials       = "CREDENTIALS"
	ErrCodeProbeFailed       = "PROBE_FAILED"

	// Post-provisioning error codes.
	ErrCodeCreateBucket       = "CREATE_BUCKET"
	ErrCodeWebsiteConfig      = "WEBSITE_CONFIG"
	ErrCodePublicAccess       = "PUBLIC_ACCESS"
	ErrCodeBucketPolicy       = "BUCKET_POLICY"
	ErrCodeBuildFailed        = "BUILD_FAILED"
	ErrCodeBuildOutputMissing = "BUILD_OUTPUT_MISSING"
	ErrCodeSyncFailed         = "SYNC_FAILED"
	ErrCodeRollbackFailed     = "ROLLBACK_FAILED"
)

// NewPreProvisioningError creates an error raised before any mutating cloud call.
func NewPreProvisioningError(code, message string, cause error) *DeployError {
	return &DeployError{
		Code:    code,
		Message: message,
		Phase:   constants.PreProvisioning,
		Cause:   cause,
	}
}

// NewPostProvisioningError creates an error raised once provisioning has started.
func NewPostProvisioningError(code, message string, cause error) *DeployError {
	return &DeployError{
		Code:    code,
		Message: message,
		Phase:   constants.PostProvisioning,
		Cause:   cause,
	}
}

// Convenience constructors for common errors

// ErrConfigNotFound creates an error for a missing configuration file.
func ErrConfigNotFound(path string, cause error) *DeployError {
	return NewPreProvisioningError(ErrCodeConfigNotFound, "configuration file not found: "+path, cause)
}

// ErrInvalidConfig creates an error for CLI options that fail validation.
func ErrInvalidConfig(message string, cause error) *DeployError {
	return NewPreProvisioningError(ErrCodeInvalidConfig, message, cause)
}

// ErrMissingVariables creates an error listing every missing required variable.
func ErrMissingVariables(names []string) *DeployError {
	return NewPreProvisioningError(ErrCodeMissingVariables,
		"missing required configuration: "+strings.Join(names, ", "), nil)
}

// ErrInvalidBucketName creates an error for a bucket name rejected by the naming rules.
func ErrInvalidBucketName(name string, cause error) *DeployError {
	return NewPreProvisioningError(ErrCodeInvalidBucketName, fmt.Sprintf("invalid bucket name %q", name), cause)
}

// ErrToolNotFound creates an error for an external tool missing from PATH.
func ErrToolNotFound(tool string, cause error) *DeployError {
	return NewPreProvisioningError(ErrCodeToolNotFound, tool+" not found in PATH", cause)
}

// ErrCredentials creates an error for cloud credentials that cannot be resolved.
func ErrCredentials(message string, cause error) *DeployError {
	return NewPreProvisioningError(ErrCodeCredentials, message, cause)
}

// ErrProbeFailed creates an error for a bucket existence probe that failed for
// reasons other than the bucket being absent.
func ErrProbeFailed(bucket string, cause error) *DeployError {
	return NewPreProvisioningError(ErrCodeProbeFailed, "failed to check bucket "+bucket, cause)
}

// ErrCreateBucket creates an error for a failed bucket creation.
func ErrCreateBucket(bucket string, cause error) *DeployError {
	return NewPostProvisioningError(ErrCodeCreateBucket, "failed to create bucket "+bucket, cause)
}

// ErrWebsiteConfig creates an error for a failed website hosting configuration.
func ErrWebsiteConfig(bucket string, cause error) *DeployError {
	return NewPostProvisioningError(ErrCodeWebsiteConfig, "failed to configure website hosting on "+bucket, cause)
}

// ErrPublicAccess creates an error for a failed public access block update.
func ErrPublicAccess(bucket string, cause error) *DeployError {
	return NewPostProvisioningError(ErrCodePublicAccess, "failed to disable public access block on "+bucket, cause)
}

// ErrBucketPolicy creates an error for a failed bucket policy attachment.
func ErrBucketPolicy(bucket string, cause error) *DeployError {
	return NewPostProvisioningError(ErrCodeBucketPolicy, "failed to apply public read policy to "+bucket, cause)
}

// ErrBuildFailed creates an error for a failed front-end build.
func ErrBuildFailed(cause error) *DeployError {
	return NewPostProvisioningError(ErrCodeBuildFailed, "build failed", cause)
}

// ErrBuildOutputMissing creates an error for a build output directory that does not exist.
func ErrBuildOutputMissing(dir string, cause error) *DeployError {
	return NewPostProvisioningError(ErrCodeBuildOutputMissing, "build output directory not found: "+dir, cause)
}

// ErrSyncFailed creates an error for a failed upload.
func ErrSyncFailed(bucket string, cause error) *DeployError {
	return NewPostProvisioningError(ErrCodeSyncFailed, "failed to sync build output to "+bucket, cause)
}

// ErrRollbackFailed creates an error for a rollback that could not delete the bucket.
func ErrRollbackFailed(bucket string, cause error) *DeployError {
	return NewPostProvisioningError(ErrCodeRollbackFailed, "rollback failed to delete bucket "+bucket, cause)
}

// CommandError is the failed outcome of an external command.
type CommandError struct {
	// Command is the command line that was run
	Command string
	// ExitCode is the process exit status, or -1 when the process never started
	ExitCode int
	// Stderr is the tail of the captured diagnostic output
	Stderr string
	// Cause is the underlying error from os/exec
	Cause error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	if e.ExitCode < 0 && e.Cause != nil {
		msg = fmt.Sprintf("%s could not be run: %v", e.Command, e.Cause)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping.
func (e *CommandError) Unwrap() error {
	return e.Cause
}

// GetErrorCode extracts the error code from an error.
// Returns empty string if the error is not a DeployError.
func GetErrorCode(err error) string {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		return deployErr.Code
	}
	return ""
}

// GetPhase extracts the pipeline phase from an error.
// Errors that are not DeployErrors are treated as pre-provisioning.
func GetPhase(err error) constants.Phase {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		return deployErr.Phase
	}
	return constants.PreProvisioning
}

// IsPostProvisioning reports whether the error happened after provisioning started.
func IsPostProvisioning(err error) bool {
	return GetPhase(err) == constants.PostProvisioning
}

// GetErrorMessage extracts a user-friendly message from an error.
func GetErrorMessage(err error) string {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		return deployErr.Message
	}
	return err.Error()
}

// GetErrorDetails extracts detailed error information including the underlying cause.
// Returns the underlying error message if available, otherwise returns the main error message.
func GetErrorDetails(err error) string {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		if deployErr.Cause != nil {
			return deployErr.Cause.Error()
		}
		return deployErr.Message
	}
	return err.Error()
}

// ExitCode maps an error to the process exit status: 0 for nil, 1 for any failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
