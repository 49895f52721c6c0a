package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyDocument(t *testing.T) {
	d := New()
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 1, d.LineCount())
	assert.Equal(t, "", d.Path())
	assert.Empty(t, d.GetLines(1, 10))
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	content := "Lorem ipsum dolor sit amet, consectetur adipiscing elit.\nPraesent ultricies lacus ut molestie dapibus."
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, len(content), d.Len())
	assert.Equal(t, "doc.txt", d.Name())
	assert.Equal(t, []string{
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
		"Praesent ultricies lacus ut molestie dapibus.",
	}, d.GetLines(1, 10))

	d.Insert(1, len("Lorem"), []byte(","))
	require.NoError(t, d.Save())

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "Lorem, ipsum")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestGetLinesOmitsPastEnd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo"), 0644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, d.GetLines(1, 50))
}

func TestInsertOutOfRangeNoOp(t *testing.T) {
	d := New()
	d.Insert(5, 0, []byte("x"))
	assert.Equal(t, 0, d.Len())

	d.Insert(1, 5, []byte("x"))
	assert.Equal(t, 0, d.Len())
}

func TestSaveWithoutPathIsNoOp(t *testing.T) {
	d := New()
	require.NoError(t, d.Save())
}
