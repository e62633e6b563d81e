package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunServeReturnsConfigError(t *testing.T) {
	t.Setenv("SCENEFLOW_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	err := runServe()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
