// Package bucket holds the pure rules around the website bucket: naming, the public website
// endpoint and the public-read policy document.
package bucket

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/runvoy/sitedeploy/internal/constants"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*[a-z0-9]$`)

// ErrEmptyName is returned for an empty bucket name.
var ErrEmptyName = errors.New("bucket name cannot be empty")

// ValidateName checks a bucket name against the S3 naming rules: 3 to 63 characters,
// lowercase letters, digits, dots and hyphens only, starting and ending with a letter or digit.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	if len(name) < constants.BucketNameMinLength || len(name) > constants.BucketNameMaxLength {
		return fmt.Errorf("bucket name must be between %d and %d characters long, got %d",
			constants.BucketNameMinLength, constants.BucketNameMaxLength, len(name))
	}

	if !namePattern.MatchString(name) {
		return errors.New("bucket name must start and end with a lowercase letter or digit " +
			"and contain only lowercase letters, digits, '.' and '-'")
	}

	return nil
}
