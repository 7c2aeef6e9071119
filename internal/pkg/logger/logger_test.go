package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(LogOption{Format: "json", LogDir: dir, Level: "debug"}))

	Infof("decode failed: program=%s reason=%v", "Stake11111111111111111111111111111111111111", "truncated")
	_ = Sync()

	content, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "program=Stake11111111111111111111111111111111111111"),
		"日志文件应包含写入的内容")
}

func TestInit_InvalidLevel(t *testing.T) {
	err := Init(LogOption{Level: "verbose"})
	assert.Error(t, err)
}
