package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempLogDir points the package at a fresh directory and a fresh run ID.
func useTempLogDir(t *testing.T) {
	t.Helper()

	origDir, origErr, origID := logDir, initErr, sessionID
	logDir = t.TempDir()
	initErr = nil
	initOnce = sync.Once{}
	sessionID = ""
	sessionIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir, initErr, sessionID = origDir, origErr, origID
		initOnce = sync.Once{}
		sessionIDOnce = sync.Once{}
	})
}

func readLog(t *testing.T, l *Logger) string {
	t.Helper()
	content, err := os.ReadFile(l.LogPath())
	require.NoError(t, err)
	return string(content)
}

func TestNewLogger(t *testing.T) {
	useTempLogDir(t)

	logger, err := NewLogger("client")
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, "client", logger.component)
	assert.NotEmpty(t, logger.SessionID())
	assert.FileExists(t, logger.LogPath())

	name := filepath.Base(logger.LogPath())
	assert.True(t, strings.HasSuffix(name, "-wasend.log"), name)
	assert.Equal(t, logger.SessionID()+"-wasend.log", name)
}

func TestLoggerLevels(t *testing.T) {
	useTempLogDir(t)

	logger, err := NewLogger("seq")
	require.NoError(t, err)
	defer logger.Close()

	logger.Debugf("hidden %d", 1)
	logger.Infof("info %d", 2)
	logger.Warnf("warn")
	logger.Errorf("error")

	content := readLog(t, logger)
	assert.NotContains(t, content, "hidden")
	assert.Contains(t, content, "[seq] [INFO] info 2")
	assert.Contains(t, content, "[seq] [WARN] warn")
	assert.Contains(t, content, "[seq] [ERROR] error")

	logger.SetLevel(LevelDebug)
	logger.Debugf("visible")
	assert.Contains(t, readLog(t, logger), "[seq] [DEBUG] visible")

	logger.SetLevel(LevelError)
	logger.Warnf("dropped")
	assert.NotContains(t, readLog(t, logger), "dropped")
}

func TestLoggerEcho(t *testing.T) {
	useTempLogDir(t)

	logger, err := NewLogger("cli")
	require.NoError(t, err)
	defer logger.Close()

	var buf bytes.Buffer
	logger.SetEcho(&buf)
	logger.Infof("sent text to %s", "123")
	assert.Contains(t, buf.String(), "[cli] [INFO] sent text to 123")

	logger.SetEcho(nil)
	logger.Infof("quiet")
	assert.NotContains(t, buf.String(), "quiet")
}

func TestComponentsShareRunFile(t *testing.T) {
	useTempLogDir(t)

	a, err := NewLogger("a")
	require.NoError(t, err)
	defer a.Close()
	b, err := NewLogger("b")
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, a.SessionID(), b.SessionID())
	assert.Equal(t, a.LogPath(), b.LogPath())

	a.Infof("from a")
	b.Infof("from b")
	content := readLog(t, a)
	assert.Contains(t, content, "[a] [INFO] from a")
	assert.Contains(t, content, "[b] [INFO] from b")
}

func TestGetLogDirectory(t *testing.T) {
	useTempLogDir(t)

	dir, err := GetLogDirectory()
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestLoggerCloseTwice(t *testing.T) {
	useTempLogDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)
	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
