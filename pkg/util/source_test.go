package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceReader_Read(t *testing.T) {
	dir := t.TempDir()
	content := "<template>\n  <p>Hi</p>\n</template>\n<script lang=\"ts\">\n// 안녕 👋\n</script>\n"
	path := filepath.Join(dir, "Hello.vue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r := NewSourceReader(nil)
	data, err := r.Read(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	stats := r.Stats()
	assert.Equal(t, int64(1), stats.FilesRead)
	assert.Equal(t, int64(len(content)), stats.BytesRead)
}

func TestSourceReader_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Empty.vue")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	data, err := NewSourceReader(nil).Read(path)
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestSourceReader_LargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Large.vue")
	content := strings.Repeat("<!-- padding line -->\n", 5000)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	data, err := NewSourceReader(nil).Read(path)
	require.NoError(t, err)
	assert.Len(t, data, len(content))
}

func TestSourceReader_MissingFile(t *testing.T) {
	_, err := NewSourceReader(nil).Read(filepath.Join(t.TempDir(), "missing.vue"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSourceReader_Directory(t *testing.T) {
	_, err := NewSourceReader(nil).Read(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, LevelError, ParseLogLevel("error"))
	assert.Equal(t, LevelInfo, ParseLogLevel("verbose"))
	assert.Equal(t, FormatJSON, ParseLogFormat("json"))
	assert.Equal(t, FormatText, ParseLogFormat(""))
}
