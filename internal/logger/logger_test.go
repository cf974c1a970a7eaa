package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestVerboseLevels(t *testing.T) {
	buf := capture(t, true)

	Debug("scan %s", "docs")
	Info("found %d files", 3)
	Section("Search")

	assert.Equal(t, "[DEBUG] scan docs\n[INFO] found 3 files\n\n=== Search ===\n", buf.String())
}

func TestQuietSuppressesDebugAndInfo(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestWarnAndErrorAlwaysPrint(t *testing.T) {
	buf := capture(t, false)

	Warn("directory %q not found", "/docs")
	Error("failed: %v", "boom")

	assert.Equal(t, "[WARN] directory \"/docs\" not found\n[ERROR] failed: boom\n", buf.String())
}
