package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "data", "documents")

	require.NoError(t, EnsureDir(dir))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "data")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
}

func TestWriteReadJSONDocument_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "users.json")

	in := map[string]string{"admin": "admin", "finance_user": "finance"}
	require.NoError(t, WriteJSONDocument(path, in))

	out := map[string]string{}
	require.NoError(t, ReadJSONDocument(path, &out))
	require.Equal(t, in, out)
}

func TestReadJSONDocument_MissingFileIsNotExist(t *testing.T) {
	tmp := t.TempDir()

	var v map[string]string
	err := ReadJSONDocument(filepath.Join(tmp, "absent.json"), &v)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Nil(t, v)
}

func TestWriteJSONDocument_OverwritesWholeDocument(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "sessions.json")

	require.NoError(t, WriteJSONDocument(path, map[string]int{"a": 1, "b": 2}))
	require.NoError(t, WriteJSONDocument(path, map[string]int{"c": 3}))

	out := map[string]int{}
	require.NoError(t, ReadJSONDocument(path, &out))
	require.Equal(t, map[string]int{"c": 3}, out)
}

func TestWriteJSONDocument_LeavesNoTempFiles(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "users.json")

	require.NoError(t, WriteJSONDocument(path, map[string]string{"x": "y"}))

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "users.json", entries[0].Name())
}
