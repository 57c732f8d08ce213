package spell

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Token is a single word extracted from input text.
type Token struct {
	Raw   string // text exactly as it appeared
	Lower string // lowercase form used for dictionary lookups
	Index int    // zero-based position in the token sequence
	Start int    // byte offset of Raw in the tokenized text
	End   int    // byte offset just past Raw
}

// Normalize returns text in Unicode NFC form, so composed and decomposed
// spellings of the same word tokenize identically.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// Tokenize splits text into word tokens. Letters, digits, underscores and
// combining marks are word characters; everything else, apostrophes
// included, is a boundary, so "don't" yields "don" and "t".
func Tokenize(text string) []Token {
	lower := cases.Lower(language.Und)

	var tokens []Token
	start := -1
	flush := func(end int) {
		raw := text[start:end]
		tokens = append(tokens, Token{
			Raw:   raw,
			Lower: lower.String(raw),
			Index: len(tokens),
			Start: start,
			End:   end,
		})
		start = -1
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			flush(i)
		}
	}
	if start >= 0 {
		flush(len(text))
	}

	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.Is(unicode.Mn, r)
}

// hasLetter reports whether word contains at least one letter.
func hasLetter(word string) bool {
	return strings.IndexFunc(word, unicode.IsLetter) >= 0
}

// normalizeWord turns a dictionary entry or lookup key into the form
// stored in a Dictionary.
func normalizeWord(lower cases.Caser, w string) string {
	w = strings.TrimSpace(w)
	if w == "" {
		return ""
	}
	return lower.String(Normalize(w))
}
