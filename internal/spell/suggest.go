package spell

import "sort"

// ScanPolicy selects how the Suggester finds candidates.
//
// Both concrete policies return exactly the same suggestions; they differ
// only in latency. ScanFull compares the word against every dictionary
// entry (cheap to build, linear per lookup). ScanBKTree builds an index at
// start-up and prunes most comparisons per lookup. ScanAuto picks the
// index once the dictionary reaches IndexThreshold words.
type ScanPolicy string

const (
	ScanAuto   ScanPolicy = "auto"
	ScanFull   ScanPolicy = "full"
	ScanBKTree ScanPolicy = "bktree"
)

const (
	DefaultMaxDistance    = 2
	DefaultLimit          = 5
	DefaultIndexThreshold = 20000
)

// SuggestOptions configures a Suggester. Zero values take the defaults.
type SuggestOptions struct {
	MaxDistance    int
	Limit          int
	Policy         ScanPolicy
	IndexThreshold int
}

// Suggester ranks dictionary words by edit distance to a misspelling.
type Suggester struct {
	dict        *Dictionary
	maxDistance int
	limit       int
	policy      ScanPolicy
	tree        *bkTree
}

type candidate struct {
	word     string
	distance int
}

// NewSuggester prepares a Suggester over dict, building the BK-tree index
// when the resolved policy calls for it.
func NewSuggester(dict *Dictionary, opts SuggestOptions) *Suggester {
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = DefaultMaxDistance
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.IndexThreshold <= 0 {
		opts.IndexThreshold = DefaultIndexThreshold
	}

	policy := opts.Policy
	if policy != ScanFull && policy != ScanBKTree {
		policy = ScanFull
		if dict.Len() >= opts.IndexThreshold {
			policy = ScanBKTree
		}
	}

	s := &Suggester{
		dict:        dict,
		maxDistance: opts.MaxDistance,
		limit:       opts.Limit,
		policy:      policy,
	}
	if policy == ScanBKTree {
		s.tree = newBKTree(dict.Words())
	}
	return s
}

// Policy returns the resolved scan policy (never ScanAuto).
func (s *Suggester) Policy() ScanPolicy {
	return s.policy
}

// Suggest returns up to the configured limit of dictionary words within
// the maximum distance of word, excluding word itself. Results are
// ordered by distance, ties broken lexicographically. The result is empty,
// never nil, when nothing qualifies.
func (s *Suggester) Suggest(word string) []string {
	var found []candidate
	if s.tree != nil {
		found = s.tree.search(word, s.maxDistance)
	} else {
		found = s.scan(word)
	}

	kept := found[:0]
	for _, c := range found {
		if c.distance > 0 {
			kept = append(kept, c)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].distance != kept[j].distance {
			return kept[i].distance < kept[j].distance
		}
		return kept[i].word < kept[j].word
	})

	if len(kept) > s.limit {
		kept = kept[:s.limit]
	}
	out := make([]string, len(kept))
	for i, c := range kept {
		out[i] = c.word
	}
	return out
}

func (s *Suggester) scan(word string) []candidate {
	var found []candidate
	for _, w := range s.dict.Words() {
		if d := BoundedDistance(word, w, s.maxDistance); d <= s.maxDistance {
			found = append(found, candidate{word: w, distance: d})
		}
	}
	return found
}
