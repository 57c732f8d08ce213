package spell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDictionary(t *testing.T) {
	d, err := NewDictionary([]string{" The ", "the", "", "Quick", "fox", "  "})
	require.NoError(t, err)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"fox", "quick", "the"}, d.Words())
	assert.True(t, d.Contains("the"))
	assert.True(t, d.Contains("quick"))
	assert.False(t, d.Contains("The"), "lookups are against lowercase forms")
	assert.False(t, d.Contains("brown"))
}

func TestNewDictionary_Empty(t *testing.T) {
	_, err := NewDictionary(nil)
	assert.ErrorIs(t, err, ErrEmptyDictionary)

	_, err = NewDictionary([]string{"", "   "})
	assert.ErrorIs(t, err, ErrEmptyDictionary)
}

func TestDefaultDictionary(t *testing.T) {
	d, err := DefaultDictionary()
	require.NoError(t, err)

	assert.Greater(t, d.Len(), 500)
	for _, w := range []string{"the", "quick", "brown", "fox", "don", "t"} {
		assert.True(t, d.Contains(w), w)
	}
	assert.False(t, d.Contains("#"))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDictionary_Lines(t *testing.T) {
	path := writeFile(t, "words.txt", "# comment\nthe 23135851162\n\nQuick\n  fox  \n")

	d, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"fox", "quick", "the"}, d.Words())
}

func TestLoadDictionary_JSON(t *testing.T) {
	path := writeFile(t, "dictionary.json", `["hello", "World", "hello"]`)

	d, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, d.Words())
}

func TestLoadDictionary_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.json.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(`["alpha", "beta"]`))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	d, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, d.Words())
}

func TestLoadDictionary_Errors(t *testing.T) {
	_, err := LoadDictionary(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = LoadDictionary(writeFile(t, "empty.txt", "# nothing here\n\n"))
	assert.ErrorIs(t, err, ErrEmptyDictionary)

	_, err = LoadDictionary(writeFile(t, "bad.json", `{"not": "a list"}`))
	assert.Error(t, err)
}
