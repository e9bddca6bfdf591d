package awscli

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runvoy/sitedeploy/internal/command"
	"github.com/runvoy/sitedeploy/internal/config"
	apperrors "github.com/runvoy/sitedeploy/internal/errors"
	"github.com/runvoy/sitedeploy/internal/storage"
	mocks "github.com/runvoy/sitedeploy/internal/testing"
	"github.com/runvoy/sitedeploy/internal/testutil"
)

const testBucket = "example-site.com"

func newTestStore(runner *mocks.FakeRunner, profile string) *Store {
	return New(runner, "us-west-2", config.Credentials{Profile: profile}, testutil.SilentLogger())
}

func TestCommandLines(t *testing.T) {
	tests := []struct {
		name     string
		call     func(t *testing.T, s *Store) error
		expected string
	}{
		{
			name: "create bucket outside us-east-1",
			call: func(t *testing.T, s *Store) error {
				return s.CreateBucket(testutil.TestContext(t), testBucket, "us-west-2")
			},
			expected: "aws s3api create-bucket --bucket example-site.com " +
				"--create-bucket-configuration LocationConstraint=us-west-2 --region us-west-2 --profile default",
		},
		{
			name: "create bucket in us-east-1",
			call: func(t *testing.T, s *Store) error {
				return s.CreateBucket(testutil.TestContext(t), testBucket, "us-east-1")
			},
			expected: "aws s3api create-bucket --bucket example-site.com --region us-west-2 --profile default",
		},
		{
			name: "website",
			call: func(t *testing.T, s *Store) error {
				return s.ConfigureWebsite(testutil.TestContext(t), testBucket, "index.html", "index.html")
			},
			expected: "aws s3 website s3://example-site.com --index-document index.html " +
				"--error-document index.html --region us-west-2 --profile default",
		},
		{
			name: "public access block",
			call: func(t *testing.T, s *Store) error {
				return s.DisablePublicAccessBlock(testutil.TestContext(t), testBucket)
			},
			expected: "aws s3api put-public-access-block --bucket example-site.com " +
				"--public-access-block-configuration BlockPublicAcls=false,IgnorePublicAcls=false," +
				"BlockPublicPolicy=false,RestrictPublicBuckets=false --region us-west-2 --profile default",
		},
		{
			name: "force delete",
			call: func(t *testing.T, s *Store) error {
				return s.ForceDeleteBucket(testutil.TestContext(t), testBucket)
			},
			expected: "aws s3 rb s3://example-site.com --force --region us-west-2 --profile default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mocks.FakeRunner{}

			require.NoError(t, tt.call(t, newTestStore(runner, "default")))
			assert.Equal(t, []string{tt.expected}, runner.CommandLines())
		})
	}
}

func TestAmbientCredentialsAddNoProfile(t *testing.T) {
	runner := &mocks.FakeRunner{}

	require.NoError(t, newTestStore(runner, "").ForceDeleteBucket(testutil.TestContext(t), testBucket))

	assert.Equal(t, []string{"aws s3 rb s3://example-site.com --force --region us-west-2"}, runner.CommandLines())
}

func TestPreflight(t *testing.T) {
	require.NoError(t, newTestStore(&mocks.FakeRunner{}, "").Preflight(testutil.TestContext(t)))

	err := newTestStore(&mocks.FakeRunner{Missing: []string{"aws"}}, "").Preflight(testutil.TestContext(t))
	require.Error(t, err)
	testutil.AssertErrorCode(t, err, apperrors.ErrCodeToolNotFound)
}

func TestBucketExists(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		stderr   string
		exists   bool
		probeErr bool
		code     string
	}{
		{name: "exists", exitCode: 0, exists: true},
		{
			name:     "not found",
			exitCode: 254,
			stderr:   "An error occurred (404) when calling the HeadBucket operation: Not Found",
		},
		{
			name:     "forbidden",
			exitCode: 254,
			stderr:   "An error occurred (403) when calling the HeadBucket operation: Forbidden",
			probeErr: true,
			code:     "403",
		},
		{
			name:     "no parsable code",
			exitCode: 255,
			stderr:   "Could not connect to the endpoint URL",
			probeErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mocks.FakeRunner{Handler: func(cmd command.Cmd) (*command.Result, error) {
				if tt.exitCode == 0 {
					return &command.Result{}, nil
				}
				return mocks.Failure(cmd, tt.exitCode, tt.stderr)
			}}

			exists, err := newTestStore(runner, "default").BucketExists(testutil.TestContext(t), testBucket)

			assert.Equal(t, tt.exists, exists)
			assert.Equal(t,
				[]string{"aws s3api head-bucket --bucket example-site.com --region us-west-2 --profile default"},
				runner.CommandLines())
			if !tt.probeErr {
				assert.NoError(t, err)
				return
			}
			var probeErr *storage.ProbeError
			require.ErrorAs(t, err, &probeErr)
			assert.Equal(t, tt.code, probeErr.Code)
		})
	}
}

func policyPath(t *testing.T, cmd command.Cmd) string {
	t.Helper()
	for i, arg := range cmd.Args {
		if arg == "--policy" && i+1 < len(cmd.Args) {
			path, ok := strings.CutPrefix(cmd.Args[i+1], "file://")
			require.True(t, ok, "policy must be passed as file://")
			return path
		}
	}
	t.Fatal("no --policy argument")
	return ""
}

func TestPutBucketPolicy_TempFileRemoved(t *testing.T) {
	policy := []byte(`{"Version":"2012-10-17","Statement":[]}`)

	for _, fail := range []bool{false, true} {
		name := "success"
		if fail {
			name = "failure"
		}
		t.Run(name, func(t *testing.T) {
			var seenPath string
			runner := &mocks.FakeRunner{Handler: func(cmd command.Cmd) (*command.Result, error) {
				seenPath = policyPath(t, cmd)
				content, err := os.ReadFile(seenPath)
				require.NoError(t, err, "policy file exists while the command runs")
				assert.Equal(t, policy, content)
				if fail {
					return mocks.Failure(cmd, 254, "An error occurred (MalformedPolicy)")
				}
				return &command.Result{}, nil
			}}

			err := newTestStore(runner, "default").PutBucketPolicy(testutil.TestContext(t), testBucket, policy)

			if fail {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NotEmpty(t, seenPath)
			_, statErr := os.Stat(seenPath)
			assert.True(t, errors.Is(statErr, os.ErrNotExist), "policy file must be removed")
		})
	}
}

func TestSync(t *testing.T) {
	runner := &mocks.FakeRunner{Handler: func(_ command.Cmd) (*command.Result, error) {
		return &command.Result{Stdout: "upload: dist/index.html to s3://example-site.com/index.html\n" +
			"upload: dist/app.js to s3://example-site.com/app.js\n" +
			"delete: s3://example-site.com/old.js\n"}, nil
	}}

	result, err := newTestStore(runner, "").Sync(testutil.TestContext(t), "app/dist", testBucket)

	require.NoError(t, err)
	assert.Equal(t, &storage.SyncResult{Uploaded: 2, Deleted: 1}, result)
	assert.Equal(t,
		[]string{"aws s3 sync app/dist s3://example-site.com --delete --region us-west-2"},
		runner.CommandLines())
}

func TestSync_Failure(t *testing.T) {
	runner := &mocks.FakeRunner{Handler: func(cmd command.Cmd) (*command.Result, error) {
		return mocks.Failure(cmd, 1, "upload failed: Access Denied")
	}}

	result, err := newTestStore(runner, "").Sync(testutil.TestContext(t), "dist", testBucket)

	require.Error(t, err)
	assert.Nil(t, result)
	var cmdErr *apperrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 1, cmdErr.ExitCode)
}
