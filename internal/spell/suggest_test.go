package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDictionary(t *testing.T, words ...string) *Dictionary {
	t.Helper()
	d, err := NewDictionary(words)
	require.NoError(t, err)
	return d
}

func TestSuggest_RanksByDistanceThenWord(t *testing.T) {
	d := mustDictionary(t, "hat", "cat", "bat", "at", "that", "zebra")
	s := NewSuggester(d, SuggestOptions{})

	// every single-edit neighbour first, alphabetically, then distance 2
	assert.Equal(t, []string{"at", "bat", "cat", "hat", "that"}, s.Suggest("xat"))
}

func TestSuggest_Limit(t *testing.T) {
	d := mustDictionary(t, "hat", "cat", "bat", "at")
	s := NewSuggester(d, SuggestOptions{Limit: 2})

	assert.Equal(t, []string{"at", "bat"}, s.Suggest("xat"))
}

func TestSuggest_ExcludesExactMatch(t *testing.T) {
	d := mustDictionary(t, "cat", "bat")
	s := NewSuggester(d, SuggestOptions{})

	assert.Equal(t, []string{"bat"}, s.Suggest("cat"))
}

func TestSuggest_NoCandidates(t *testing.T) {
	d := mustDictionary(t, "the", "quick", "fox")
	s := NewSuggester(d, SuggestOptions{})

	got := s.Suggest("xylophone")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggest_MaxDistance(t *testing.T) {
	d := mustDictionary(t, "kitten")
	assert.Empty(t, NewSuggester(d, SuggestOptions{MaxDistance: 2}).Suggest("sitting"))
	assert.Equal(t, []string{"kitten"}, NewSuggester(d, SuggestOptions{MaxDistance: 3}).Suggest("sitting"))
}

func TestSuggester_AutoPolicy(t *testing.T) {
	d := mustDictionary(t, "the", "quick", "fox")

	assert.Equal(t, ScanFull, NewSuggester(d, SuggestOptions{}).Policy())
	assert.Equal(t, ScanBKTree, NewSuggester(d, SuggestOptions{IndexThreshold: 3}).Policy())
	assert.Equal(t, ScanFull, NewSuggester(d, SuggestOptions{Policy: ScanFull, IndexThreshold: 1}).Policy())
	assert.Equal(t, ScanBKTree, NewSuggester(d, SuggestOptions{Policy: ScanBKTree}).Policy())
}

func TestSuggester_PoliciesAgree(t *testing.T) {
	d, err := DefaultDictionary()
	require.NoError(t, err)

	full := NewSuggester(d, SuggestOptions{Policy: ScanFull})
	tree := NewSuggester(d, SuggestOptions{Policy: ScanBKTree})
	require.Equal(t, d.Len(), tree.tree.size)

	for _, w := range []string{"teh", "qick", "wrold", "spelng", "helo", "thier", "recieve", "x", "abcdefgh", "don't", "dont"} {
		assert.Equal(t, full.Suggest(w), tree.Suggest(w), w)
	}
}
