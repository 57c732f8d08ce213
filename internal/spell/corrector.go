package spell

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Correct replaces each flagged word in text with its top suggestion.
// Errors are applied rightmost first; each one rewrites the first
// remaining whole-word, case-insensitive occurrence of its word. Errors
// without suggestions are skipped.
func Correct(text string, errs []SpellingError) string {
	if len(errs) == 0 {
		return text
	}

	ordered := make([]SpellingError, len(errs))
	copy(ordered, errs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position > ordered[j].Position
	})

	for _, e := range ordered {
		if len(e.Suggestions) == 0 {
			continue
		}
		text = replaceFirstWord(text, e.Word, e.Suggestions[0])
	}
	return text
}

func replaceFirstWord(text, word, replacement string) string {
	word = Normalize(word)
	for _, tok := range Tokenize(text) {
		if Normalize(tok.Lower) != word {
			continue
		}
		return text[:tok.Start] + matchCase(tok.Raw, replacement) + text[tok.End:]
	}
	return text
}

// matchCase gives replacement the case shape of original: all upper,
// leading capital, or unchanged.
func matchCase(original, replacement string) string {
	if !hasLetter(original) {
		return replacement
	}
	if strings.ToUpper(original) == original && utf8.RuneCountInString(original) > 1 {
		return strings.ToUpper(replacement)
	}
	first, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(first) {
		r, size := utf8.DecodeRuneInString(replacement)
		return string(unicode.ToTitle(r)) + replacement[size:]
	}
	return replacement
}
