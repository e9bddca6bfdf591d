package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbeError(t *testing.T) {
	cause := errors.New("api error Forbidden")

	withCode := &ProbeError{Bucket: "example-site.com", Code: "Forbidden", Cause: cause}
	assert.Equal(t, "probe of bucket example-site.com failed (Forbidden): api error Forbidden", withCode.Error())
	assert.ErrorIs(t, withCode, cause)

	withoutCode := &ProbeError{Bucket: "example-site.com", Cause: cause}
	assert.Equal(t, "probe of bucket example-site.com failed: api error Forbidden", withoutCode.Error())

	var target *ProbeError
	assert.ErrorAs(t, error(withCode), &target)
}
