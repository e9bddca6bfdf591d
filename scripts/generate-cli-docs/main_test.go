package main

import (
	"bytes"
	"testing"

	"github.com/runvoy/sitedeploy/cmd/cli/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, render(&buf, cmd.RootCmd()))

	out := buf.String()
	assert.Contains(t, out, "# sitedeploy CLI")
	assert.Contains(t, out, "## sitedeploy\n")
	assert.Contains(t, out, "### sitedeploy deploy")
	assert.Contains(t, out, "### sitedeploy validate")
	assert.Contains(t, out, "--strict-probe")
	assert.NotContains(t, out, "SEE ALSO")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("sitedeploy deploy")),
		bytes.Index(buf.Bytes(), []byte("sitedeploy validate")))
}

func TestOptionsSection(t *testing.T) {
	md := "## x\n\n### Options\n\n```\n  -h, --help\n```\n\n### SEE ALSO\n\n* [y](y.md)\n"

	assert.Equal(t, "### Options\n\n```\n  -h, --help\n```", optionsSection(md))
	assert.Empty(t, optionsSection("## x\n"))
}
