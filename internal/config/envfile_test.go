package config

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := testutil.WriteConfigFile(t,
		"# deployment settings",
		"",
		"AWS_REGION=us-west-2",
		`DOMAIN_NAME="example-site.com"`,
		"AWS_CLI_PROFILE='default'",
		"export VITE_API_URL=https://api.example.com",
		"   ",
		"UNKNOWN_KEY=kept",
	)

	set, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, Set{
		"AWS_REGION":      "us-west-2",
		"DOMAIN_NAME":     "example-site.com",
		"AWS_CLI_PROFILE": "default",
		"VITE_API_URL":    "https://api.example.com",
		"UNKNOWN_KEY":     "kept",
	}, set)
}

func TestLoadFile_UnusualLinesKeepTheRest(t *testing.T) {
	path := testutil.WriteConfigFile(t,
		"AWS_REGION=us-west-2",
		"MY-FLAG=1",
		"this line has no pair",
		`DOTTED.KEY="quoted value"`,
		"DOMAIN_NAME=example-site.com",
		"AWS_CLI_PROFILE=default",
		"CI=false",
	)

	set, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, Set{
		"AWS_REGION":      "us-west-2",
		"MY-FLAG":         "1",
		"DOTTED.KEY":      "quoted value",
		"DOMAIN_NAME":     "example-site.com",
		"AWS_CLI_PROFILE": "default",
		"CI":              "false",
	}, set)
}

func TestSplitPair(t *testing.T) {
	tests := []struct {
		line  string
		key   string
		value string
		ok    bool
	}{
		{line: "MY-FLAG=1", key: "MY-FLAG", value: "1", ok: true},
		{line: "export A-B = 'x y' ", key: "A-B", value: "x y", ok: true},
		{line: "EMPTY=", key: "EMPTY", value: "", ok: true},
		{line: "no pair here", ok: false},
		{line: "=value", ok: false},
		{line: "TWO WORDS=x", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			key, value, ok := splitPair(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.env")

	set, err := LoadFile(path)

	require.Error(t, err)
	assert.Nil(t, set)
	testutil.AssertErrorCode(t, err, apperrors.ErrCodeConfigNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_Empty(t *testing.T) {
	path := testutil.WriteConfigFile(t, "# nothing here")

	set, err := LoadFile(path)

	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestSet_Environ(t *testing.T) {
	set := Set{"B": "2", "A": "1"}

	assert.Equal(t, []string{"A", "B"}, set.Keys())
	assert.Equal(t, []string{"A=1", "B=2"}, set.Environ())
	assert.Empty(t, set.Get("C"))
}

func TestEnvironment_SetOverridesProcess(t *testing.T) {
	t.Setenv("SITEDEPLOY_TEST_VALUE", "from-process")
	t.Setenv("SITEDEPLOY_TEST_OTHER", "untouched")

	environ := Environment(Set{"SITEDEPLOY_TEST_VALUE": "from-file"})

	assert.Equal(t, "from-file", environ["SITEDEPLOY_TEST_VALUE"])
	assert.Equal(t, "untouched", environ["SITEDEPLOY_TEST_OTHER"])
	assert.Equal(t, "untouched", os.Getenv("SITEDEPLOY_TEST_OTHER"))
	assert.Equal(t, "from-process", os.Getenv("SITEDEPLOY_TEST_VALUE"))
}
