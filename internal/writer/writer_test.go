package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")

	require.NoError(t, Write(path, []byte("<html>v1</html>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>v1</html>", string(data))
}

func TestWriteReplacesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")

	require.NoError(t, Write(path, []byte("<html>v1</html>")))
	require.NoError(t, Write(path, []byte("<html>v2</html>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>v2</html>", string(data))
}

func TestWriteFailsOnMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist", "index.html")
	assert.Error(t, Write(path, []byte("x")))
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, Write(path, []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
