package cmd

import (
	"path/filepath"
	"testing"

	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateService_Validate(t *testing.T) {
	tests := []struct {
		name        string
		ci          string
		lines       []string
		wantCode    string
		wantCI      string
		wantCredStr string
	}{
		{
			name:        "interactive with profile",
			ci:          "false",
			lines:       []string{"AWS_REGION=us-west-2", "DOMAIN_NAME=example-site.com", "AWS_CLI_PROFILE=default"},
			wantCI:      "false",
			wantCredStr: "profile default",
		},
		{
			name:        "CI uses ambient credentials",
			ci:          "true",
			lines:       []string{"AWS_REGION=us-west-2", "DOMAIN_NAME=example-site.com", "AWS_CLI_PROFILE=default"},
			wantCI:      "true",
			wantCredStr: "ambient",
		},
		{
			name:     "interactive without profile",
			ci:       "false",
			lines:    []string{"AWS_REGION=us-west-2", "DOMAIN_NAME=example-site.com"},
			wantCode: apperrors.ErrCodeMissingVariables,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ci)
			t.Setenv("GITHUB_ACTIONS", "false")
			t.Setenv("AWS_CLI_PROFILE", "")
			out := &mockOutputInterface{}

			err := NewValidateService(out).Validate(testutil.WriteConfigFile(t, tt.lines...))

			if tt.wantCode != "" {
				testutil.AssertErrorCode(t, err, tt.wantCode)
				assert.False(t, out.called("Successf"))
				return
			}
			require.NoError(t, err)
			kv := out.keyValues()
			assert.Equal(t, "example-site.com", kv["Bucket"])
			assert.Equal(t, tt.wantCI, kv["CI"])
			assert.Equal(t, tt.wantCredStr, kv["Credentials"])
			assert.Equal(t, testWebsiteURL, kv["Website URL"])
			assert.True(t, out.called("Successf"))
		})
	}
}

func TestValidateService_Validate_MissingFile(t *testing.T) {
	out := &mockOutputInterface{}

	err := NewValidateService(out).Validate(filepath.Join(t.TempDir(), ".env"))

	testutil.AssertErrorCode(t, err, apperrors.ErrCodeConfigNotFound)
	assert.Empty(t, out.calls)
}
