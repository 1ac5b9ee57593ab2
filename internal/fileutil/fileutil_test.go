package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExistingNeverCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	err := WriteExisting(path, []byte("{}"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
	assert.NoFileExists(t, path)
}

func TestWriteExistingTruncatesAndKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a very long original": true}`), 0600))

	require.NoError(t, WriteExisting(path, []byte("{}\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestReadExisting(t *testing.T) {
	dir := t.TempDir()

	data, ok, err := ReadExisting(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	_, _, err = ReadExisting(dir)
	assert.Error(t, err, "directories are not dashboards")
}

func TestMarshalJSONKeepsOperators(t *testing.T) {
	data, err := MarshalJSON(map[string]string{"query": `|> filter(fn: (r) => r["_field"] == "value" && true)`})
	require.NoError(t, err)
	assert.Equal(t, `{"query":"|> filter(fn: (r) => r[\"_field\"] == \"value\" && true)"}`, string(data))
}

func TestLineDiff(t *testing.T) {
	before := "{\n  \"a\": 1,\n  \"b\": 2\n}\n"
	after := "{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 3\n}\n"

	diff, stats := LineDiff(before, after)
	assert.Equal(t, DiffStats{Added: 2, Removed: 1}, stats)
	assert.Contains(t, diff, "-   \"b\": 2\n")
	assert.Contains(t, diff, "+   \"c\": 3\n")
	assert.Contains(t, diff, "... 2 unchanged lines")
	assert.False(t, strings.Contains(diff, "+ }"))

	same, stats := LineDiff(before, before)
	assert.Equal(t, DiffStats{}, stats)
	assert.Equal(t, "  ... 4 unchanged lines\n", same)
}

func TestDedupeStringsKeepsFirstOccurrence(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, DedupeStrings([]string{"b", "a", "b", "c", "a"}))
}

func TestHashBytes(t *testing.T) {
	assert.Len(t, HashBytes([]byte("x")), 16)
	assert.Equal(t, HashBytes([]byte("x")), HashBytes([]byte("x")))
	assert.NotEqual(t, HashBytes([]byte("x")), HashBytes([]byte("y")))
}
