package spell

// SpellingError describes one unknown word in a checked text.
type SpellingError struct {
	Word        string   `json:"word"`
	Position    int      `json:"position"`
	Suggestions []string `json:"suggestions"`
}

// Checker flags words missing from a Dictionary and attaches suggestions.
// It holds no mutable state and is safe for concurrent use.
type Checker struct {
	dict      *Dictionary
	suggester *Suggester
}

// NewChecker returns a Checker backed by dict. A nil suggester gets the
// default options.
func NewChecker(dict *Dictionary, suggester *Suggester) *Checker {
	if suggester == nil {
		suggester = NewSuggester(dict, SuggestOptions{})
	}
	return &Checker{dict: dict, suggester: suggester}
}

// Dictionary returns the dictionary the checker consults.
func (c *Checker) Dictionary() *Dictionary {
	return c.dict
}

// Check returns one SpellingError per unknown token occurrence, in text
// order. Every token is looked up, numbers included. Blank input yields an
// empty list.
func (c *Checker) Check(text string) []SpellingError {
	errs := []SpellingError{}
	seen := make(map[string][]string)

	for _, tok := range Tokenize(Normalize(text)) {
		if c.dict.Contains(tok.Lower) {
			continue
		}
		suggestions, ok := seen[tok.Lower]
		if !ok {
			suggestions = c.suggester.Suggest(tok.Lower)
			seen[tok.Lower] = suggestions
		}
		errs = append(errs, SpellingError{
			Word:        tok.Lower,
			Position:    tok.Index,
			Suggestions: append([]string(nil), suggestions...),
		})
	}
	return errs
}

// Correct checks text and applies the top suggestion for each error.
func (c *Checker) Correct(text string) (string, []SpellingError) {
	errs := c.Check(text)
	return Correct(text, errs), errs
}
