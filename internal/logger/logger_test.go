package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
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

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)
	Debug("page %d of %s", 3, "instituciones")
	assert.Equal(t, "[DEBUG] page 3 of instituciones\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)
	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")
	assert.Zero(t, buf.Len())
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)
	Error("insert failed: %v", "boom")
	assert.Equal(t, "[ERROR] insert failed: boom\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)
	Section("Institutions")
	assert.Equal(t, "\n=== Institutions ===\n", buf.String())
}

func TestInfoAndWarn(t *testing.T) {
	buf := capture(t, true)
	Info("info message %d", 42)
	Warn("warning message")
	assert.Equal(t, "[INFO] info message 42\n[WARN] warning message\n", buf.String())
}

func TestScope(t *testing.T) {
	buf := capture(t, true)
	s := Scope("gobec")
	s.Info("fetched %d items", 7)
	s.Error("status %d", 500)
	assert.Equal(t, "[INFO] [gobec] fetched 7 items\n[ERROR] [gobec] status 500\n", buf.String())
}

func TestScope_WarnQuietWhenNotVerbose(t *testing.T) {
	buf := capture(t, false)
	s := Scope("astra")
	s.Warn("slow page")
	s.Info("created")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	s.Warn("slow page")
	assert.Equal(t, "[WARN] [astra] slow page\n", buf.String())
}
