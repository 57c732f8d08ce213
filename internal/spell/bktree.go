package spell

// bkTree is a Burkhard-Keller tree keyed by edit distance. A query for
// all words within distance k of w only descends into children whose edge
// distance lies in [d-k, d+k], where d is the distance from w to the
// node. The triangle inequality guarantees nothing outside that range can
// match, so results are identical to a full scan.
type bkTree struct {
	root *bkNode
	size int
}

type bkNode struct {
	word     string
	children map[int]*bkNode
}

func newBKTree(words []string) *bkTree {
	t := &bkTree{}
	for _, w := range words {
		t.insert(w)
	}
	return t
}

func (t *bkTree) insert(word string) {
	if t.root == nil {
		t.root = &bkNode{word: word}
		t.size++
		return
	}

	node := t.root
	for {
		d := Distance(word, node.word)
		if d == 0 {
			return
		}
		child, ok := node.children[d]
		if !ok {
			if node.children == nil {
				node.children = make(map[int]*bkNode)
			}
			node.children[d] = &bkNode{word: word}
			t.size++
			return
		}
		node = child
	}
}

func (t *bkTree) search(word string, maxDistance int) []candidate {
	if t.root == nil {
		return nil
	}

	var found []candidate
	stack := []*bkNode{t.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		d := Distance(word, node.word)
		if d <= maxDistance {
			found = append(found, candidate{word: node.word, distance: d})
		}
		for edge, child := range node.children {
			if edge >= d-maxDistance && edge <= d+maxDistance {
				stack = append(stack, child)
			}
		}
	}
	return found
}
