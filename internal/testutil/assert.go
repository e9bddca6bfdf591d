package testutil

import (
	stderrors "errors"
	"testing"

	"github.com/runvoy/sitedeploy/internal/constants"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"

	"github.com/stretchr/testify/assert"
)

// AssertErrorType checks if the error is of a specific type using errors.Is.
func AssertErrorType(t *testing.T, err, target error, _ ...any) bool {
	t.Helper()
	if !stderrors.Is(err, target) {
		return assert.Fail(t, "Error type mismatch", "Expected error type %T, got %T", target, err)
	}
	return true
}

// AssertErrorCode checks if the error has a specific deploy error code.
func AssertErrorCode(t *testing.T, err error, expectedCode string, _ ...any) bool {
	t.Helper()
	code := apperrors.GetErrorCode(err)
	if code != expectedCode {
		return assert.Fail(t, "Error code mismatch", "Expected error code %q, got %q (%v)", expectedCode, code, err)
	}
	return true
}

// AssertPhase checks that the error belongs to the expected pipeline phase.
func AssertPhase(t *testing.T, err error, expected constants.Phase, _ ...any) bool {
	t.Helper()
	phase := apperrors.GetPhase(err)
	if phase != expected {
		return assert.Fail(t, "Phase mismatch", "Expected phase %q, got %q", expected, phase)
	}
	return true
}
