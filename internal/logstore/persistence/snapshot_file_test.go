package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSnapshotterLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(filepath.Join(dir, "image.json"))
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, f.Save(context.Background(), sampleImage()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "image.json", entries[0].Name())
}

func TestFileSnapshotterReadFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory at the image path cannot be read as a file.
	path := filepath.Join(dir, "image.json")
	require.NoError(t, os.Mkdir(path, 0o755))

	f, err := NewFile(path)
	require.NoError(t, err)

	_, err = f.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorruptImage)

	assert.Error(t, f.Save(context.Background(), sampleImage()))
}

func TestFileQuarantineKeepsBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,`), 0o600))
	f, err := NewFile(path)
	require.NoError(t, err)

	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	where, err := f.Quarantine(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, path+".corrupt-20240601T000000Z", where)

	data, err := os.ReadFile(where)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,`, string(data))
	assert.NoFileExists(t, path)
}

func TestNewFileRequiresPath(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

func TestOpenPebbleRequiresDir(t *testing.T) {
	_, err := OpenPebble("")
	assert.Error(t, err)
}
