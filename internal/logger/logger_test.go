package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_AppendsStampedLineToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ar.txt")
	l := New(path)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Log("session started")
	l.Logf("asset %s failed: %v", "sofa", os.ErrNotExist)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[2026-01-02 03:04:05] session started", lines[0])
	assert.Contains(t, lines[1], "asset sofa failed")
	assert.Equal(t, lines, l.Lines())
	assert.Equal(t, lines[1], l.Last())
}

func TestLog_MemoryOnly(t *testing.T) {
	l := New("")
	assert.Equal(t, "", l.Last())
	l.Log("hello")
	assert.Len(t, l.Lines(), 1)
	assert.True(t, strings.HasSuffix(l.Last(), "] hello"))
}

func TestLines_ReturnsCopy(t *testing.T) {
	l := New("")
	l.Log("a")
	lines := l.Lines()
	lines[0] = "mutated"
	assert.NotEqual(t, "mutated", l.Lines()[0])
}
