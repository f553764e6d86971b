package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFiles_VueFilesOnly(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "App.vue", "<template/>")
	writeFile(t, tmp, "main.ts", "export {}")
	writeFile(t, tmp, "components/Button.vue", "<template/>")
	writeFile(t, tmp, "components/deep/nested/Icon.vue", "<template/>")
	writeFile(t, tmp, "README.md", "# readme")

	files, err := DiscoverFiles(tmp, DefaultScanConfig())
	require.NoError(t, err)

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f), "expected absolute path, got %s", f)
	}
	assert.Equal(t, []string{"App.vue", "components/Button.vue", "components/deep/nested/Icon.vue"}, relPaths(t, tmp, files))
}

func TestDiscoverFiles_ExclusionsAtAnyDepth(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "src/Keep.vue", "<template/>")
	writeFile(t, tmp, "node_modules/lib/Dep.vue", "<template/>")
	writeFile(t, tmp, "dist/Built.vue", "<template/>")
	writeFile(t, tmp, "packages/ui/node_modules/x/Nested.vue", "<template/>")
	writeFile(t, tmp, "packages/ui/dist/Out.vue", "<template/>")
	writeFile(t, tmp, "packages/ui/src/distance/Near.vue", "<template/>")

	files, err := DiscoverFiles(tmp, DefaultScanConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"packages/ui/src/distance/Near.vue", "src/Keep.vue"}, relPaths(t, tmp, files))
}

func TestDiscoverFiles_SortedOutput(t *testing.T) {
	tmp := t.TempDir()
	for _, name := range []string{"b/Z.vue", "a/Y.vue", "C.vue", "b/A.vue", "a.vue"} {
		writeFile(t, tmp, name, "<template/>")
	}

	files, err := DiscoverFiles(tmp, DefaultScanConfig())
	require.NoError(t, err)
	require.Len(t, files, 5)

	for i := 1; i < len(files); i++ {
		assert.LessOrEqual(t, files[i-1], files[i], "files should be sorted")
	}
}

func TestDiscoverFiles_CustomPatterns(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "src/A.vue", "<template/>")
	writeFile(t, tmp, "src/legacy/B.vue", "<template/>")
	writeFile(t, tmp, "docs/C.vue", "<template/>")

	cfg := ScanConfig{
		Include: []string{"src/**/*.vue"},
		Exclude: []string{"**/legacy/**"},
	}
	files, err := DiscoverFiles(tmp, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/A.vue"}, relPaths(t, tmp, files))
}

func TestDiscoverFiles_InvalidPattern(t *testing.T) {
	tmp := t.TempDir()

	_, err := DiscoverFiles(tmp, ScanConfig{Exclude: []string{"[invalid"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclude pattern")

	_, err = DiscoverFiles(tmp, ScanConfig{Include: []string{"{a,b"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid include pattern")
}

func TestDiscoverFiles_MissingRoot(t *testing.T) {
	_, err := DiscoverFiles(filepath.Join(t.TempDir(), "nope"), DefaultScanConfig())
	assert.ErrorIs(t, err, ErrRootUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverFiles_RootIsFile(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "App.vue", "<template/>")

	_, err := DiscoverFiles(filepath.Join(tmp, "App.vue"), DefaultScanConfig())
	assert.ErrorIs(t, err, ErrRootUnavailable)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestDiscoverFiles_EmptyDirectory(t *testing.T) {
	files, err := DiscoverFiles(t.TempDir(), DefaultScanConfig())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRelativePath(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "repo")
	assert.Equal(t, "src/App.vue", RelativePath(root, filepath.Join(root, "src", "App.vue")))
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)

	rel := make([]string, len(files))
	for i, f := range files {
		rel[i] = RelativePath(absRoot, f)
	}
	return rel
}

// writeFile writes content to dir/name, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
