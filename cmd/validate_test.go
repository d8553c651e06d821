package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunValidate_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
telemetry:
  node:
    name: obc-test
  queue:
    capacity: 16
`), 0o644))

	var buf bytes.Buffer
	err := runValidate(path, &buf)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `VALID: node "obc-test"`)
	assert.Contains(t, buf.String(), "queue capacity 16")
}

func TestRunValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
telemetry:
  log:
    level: loud
`), 0o644))

	var buf bytes.Buffer
	err := runValidate(path, &buf)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID")
}

func TestRunValidate_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := runValidate(filepath.Join(t.TempDir(), "nope.yml"), &buf)
	assert.Error(t, err)
}
