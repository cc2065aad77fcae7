package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToExtraOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "cppmerge.log")

	require.NoError(t, Setup(false, "cppmerge", "test", "", logPath))
	Logger.Info("hello from test")
	_ = Logger.Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"appName":"cppmerge"`)
}

func TestSetup_InvalidOutput(t *testing.T) {
	err := Setup(true, "cppmerge", "test", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	assert.Error(t, err)
	assert.NotNil(t, Logger)
}
