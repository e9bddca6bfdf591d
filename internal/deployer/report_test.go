package deployer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/runvoy/sitedeploy/internal/storage"
)

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	result := &Result{
		Bucket:      "example-site.com",
		Region:      "us-west-2",
		Credentials: "ambient",
		Created:     true,
		Sync:        &storage.SyncResult{Uploaded: 3, Deleted: 1},
		WebsiteURL:  "http://example-site.com.s3-website-us-west-2.amazonaws.com",
		StartedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:    90 * time.Second,
	}

	require.NoError(t, result.WriteReport(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "example-site.com", doc["bucket"])
	assert.Equal(t, true, doc["created"])
	assert.Equal(t, "1m30s", doc["duration"])
	assert.Equal(t, map[string]any{"uploaded": 3, "skipped": 0, "deleted": 1}, doc["sync"])
	assert.NotContains(t, doc, "error")
	assert.NotContains(t, doc, "rolled_back")
}

func TestWriteReport_BadPath(t *testing.T) {
	result := &Result{Bucket: "b"}

	err := result.WriteReport(filepath.Join(t.TempDir(), "missing", "report.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write report")
}

func TestResult_Succeeded(t *testing.T) {
	assert.True(t, (&Result{}).Succeeded())
	assert.False(t, (&Result{Error: "boom"}).Succeeded())
}
