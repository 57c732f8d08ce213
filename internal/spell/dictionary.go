package spell

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrEmptyDictionary is returned when a word source yields no usable words.
var ErrEmptyDictionary = errors.New("dictionary contains no words")

//go:embed words.txt
var defaultWords []byte

// Dictionary is an immutable set of known lowercase word forms. It is
// built once at start-up and is safe for concurrent use without locking.
type Dictionary struct {
	words  map[string]struct{}
	sorted []string
}

// NewDictionary builds a dictionary from words. Entries are trimmed,
// lowercased and deduplicated; blank entries are skipped.
func NewDictionary(words []string) (*Dictionary, error) {
	lower := cases.Lower(language.Und)
	d := &Dictionary{words: make(map[string]struct{}, len(words))}

	for _, w := range words {
		w = normalizeWord(lower, w)
		if w == "" {
			continue
		}
		if _, ok := d.words[w]; ok {
			continue
		}
		d.words[w] = struct{}{}
		d.sorted = append(d.sorted, w)
	}

	if len(d.sorted) == 0 {
		return nil, ErrEmptyDictionary
	}
	sort.Strings(d.sorted)
	return d, nil
}

// DefaultDictionary returns the embedded English word list.
func DefaultDictionary() (*Dictionary, error) {
	words, err := scanWordLines(bytes.NewReader(defaultWords))
	if err != nil {
		return nil, err
	}
	return NewDictionary(words)
}

// LoadDictionary reads a word list from path. Files ending in .json hold a
// JSON array of strings; any other file is read one word per line, with
// blank lines and #-comments ignored and only the first field of each line
// used. A trailing .gz on either form is decompressed transparently.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompress dictionary %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	var words []string
	if strings.EqualFold(filepath.Ext(name), ".json") {
		err = json.NewDecoder(r).Decode(&words)
	} else {
		words, err = scanWordLines(r)
	}
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}

	d, err := NewDictionary(words)
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}
	return d, nil
}

func scanWordLines(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)[0])
	}
	return words, scanner.Err()
}

// Contains reports whether word is known. Lookups are exact against the
// stored lowercase forms, so callers lowercase first.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[word]
	return ok
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.sorted)
}

// Words returns every word in lexicographic order. The slice is shared
// and must not be modified.
func (d *Dictionary) Words() []string {
	return d.sorted
}
