package spell

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T, words ...string) *Checker {
	t.Helper()
	d := mustDictionary(t, words...)
	return NewChecker(d, nil)
}

func TestCheck_FlagsUnknownWord(t *testing.T) {
	c := newTestChecker(t, "the", "quick", "fox")

	errs := c.Check("the qick fox")
	require.Len(t, errs, 1)
	assert.Equal(t, "qick", errs[0].Word)
	assert.Equal(t, 1, errs[0].Position)
	require.NotEmpty(t, errs[0].Suggestions)
	assert.Equal(t, "quick", errs[0].Suggestions[0])
}

func TestCheck_EmptyInput(t *testing.T) {
	c := newTestChecker(t, "the")

	assert.Empty(t, c.Check(""))
	assert.Empty(t, c.Check("   \n\t"))
	assert.Empty(t, c.Check("?!... ,"))
	assert.NotNil(t, c.Check(""))
}

func TestCheck_CaseInsensitive(t *testing.T) {
	c := newTestChecker(t, "the", "quick", "fox")

	assert.Empty(t, c.Check("THE Quick fOx"))

	errs := c.Check("The QICK fox")
	require.Len(t, errs, 1)
	assert.Equal(t, "qick", errs[0].Word)
}

func TestCheck_RepeatedWordsEachReported(t *testing.T) {
	c := newTestChecker(t, "the", "quick", "fox")

	errs := c.Check("qick the qick")
	require.Len(t, errs, 2)
	assert.Equal(t, 0, errs[0].Position)
	assert.Equal(t, 2, errs[1].Position)
	assert.Equal(t, errs[0].Suggestions, errs[1].Suggestions)

	// suggestion slices are independent per error
	errs[0].Suggestions[0] = "changed"
	assert.Equal(t, "quick", errs[1].Suggestions[0])
}

func TestCheck_NumbersAreChecked(t *testing.T) {
	c := newTestChecker(t, "the", "quick", "fox")

	errs := c.Check("the 42 qick")
	require.Len(t, errs, 2)
	assert.Equal(t, "42", errs[0].Word)
	assert.Equal(t, 1, errs[0].Position)
	assert.Equal(t, "qick", errs[1].Word)
	assert.Equal(t, 2, errs[1].Position)

	// numbers in the word list are known like any other entry
	c = newTestChecker(t, "the", "fox", "42")
	assert.Empty(t, c.Check("the 42 fox"))
}

func TestCheck_ContractionsSplitAtApostrophe(t *testing.T) {
	c := newTestChecker(t, "i", "know", "don", "t", "the")

	errs := c.Check("I don't know 123 the")
	require.Len(t, errs, 1)
	assert.Equal(t, "123", errs[0].Word)
	assert.Equal(t, 4, errs[0].Position)
}

func TestCheck_NoSuggestions(t *testing.T) {
	c := newTestChecker(t, "the")

	errs := c.Check("the xylophone")
	require.Len(t, errs, 1)
	assert.Equal(t, "xylophone", errs[0].Word)
	assert.NotNil(t, errs[0].Suggestions)
	assert.Empty(t, errs[0].Suggestions)
}

func TestCheck_DecomposedAccents(t *testing.T) {
	c := newTestChecker(t, "caf\u00e9")

	assert.Empty(t, c.Check("cafe\u0301"))
}

func TestCheck_Concurrent(t *testing.T) {
	d, err := DefaultDictionary()
	require.NoError(t, err)
	c := NewChecker(d, NewSuggester(d, SuggestOptions{Policy: ScanBKTree}))

	want := c.Check("teh qick brown fox")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, c.Check("teh qick brown fox"))
		}()
	}
	wg.Wait()
}

func TestChecker_Correct(t *testing.T) {
	c := newTestChecker(t, "the", "quick", "fox")

	corrected, errs := c.Correct("the qick fox")
	assert.Equal(t, "the quick fox", corrected)
	assert.Len(t, errs, 1)
}
