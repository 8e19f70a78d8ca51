package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "debug", Console: &buf})
	require.NoError(t, err)

	log.Debugw("moved", "session", "abcd1234", "outcome", "accepted(running)")
	Sync(log)

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "moved")
	assert.Contains(t, out, "abcd1234")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "warn", Console: &buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	Sync(log)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.log")
	log, err := New(Options{File: path, Console: &bytes.Buffer{}})
	require.NoError(t, err)

	log.Infow("session created", "session", "feedbeef")
	Sync(log)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session":"feedbeef"`)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
