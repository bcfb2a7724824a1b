package dat

import "sort"

// symTerminator is the reserved edge symbol marking the end of a key. It
// is distinct from any byte value, which are mapped to symbols 1..256.
const symTerminator = 0

// symCount is the size of the double-array alphabet: 256 byte values
// plus the terminator.
const symCount = 257

func symbolOf(b byte) int { return int(b) + 1 }

// trieEdge is one entry in a node's sorted child list.
type trieEdge struct {
	sym   int
	child *trieNode
}

// trieNode is a node of the mutable, node-based trie built by repeated
// calls to Trie.Set. Children are kept in ascending symbol order via
// binary-search insertion; most nodes are sparse, so a sorted slice beats
// a fixed 257-wide array or a map for both memory and iteration order.
type trieNode struct {
	edges  []trieEdge
	values []int // indexes into Trie.values, present only at a $ terminus
}

func (n *trieNode) childAt(sym int) (int, bool) {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i].sym >= sym })
	if i < len(n.edges) && n.edges[i].sym == sym {
		return i, true
	}
	return i, false
}

func (n *trieNode) child(sym int) *trieNode {
	i, ok := n.childAt(sym)
	if !ok {
		return nil
	}
	return n.edges[i].child
}

func (n *trieNode) ensureChild(sym int) *trieNode {
	i, ok := n.childAt(sym)
	if ok {
		return n.edges[i].child
	}
	c := &trieNode{}
	n.edges = append(n.edges, trieEdge{})
	copy(n.edges[i+1:], n.edges[i:])
	n.edges[i] = trieEdge{sym: sym, child: c}
	return c
}

// Trie is a mutable, node-based map from byte-string keys to ordered
// lists of values, built by repeated calls to Set and consumed exactly
// once by ToDoubleArray.
type Trie[V any] struct {
	root   *trieNode
	values [][]byte
	codec  Codec[V]
	count  int // number of Set calls, reported by Len
}

// TrieOption configures a Trie constructed by NewTrie.
type TrieOption[V any] func(*Trie[V])

// WithCodec overrides the default JSONCodec used to encode values into
// the binary format's value blobs.
func WithCodec[V any](c Codec[V]) TrieOption[V] {
	return func(t *Trie[V]) { t.codec = c }
}

// NewTrie returns an empty mutable trie. Values are encoded with
// JSONCodec[V] unless WithCodec overrides it.
func NewTrie[V any](opts ...TrieOption[V]) *Trie[V] {
	t := &Trie[V]{
		root:  &trieNode{},
		codec: JSONCodec[V]{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Set associates value with key. Repeated calls with an equal key
// accumulate values in insertion order; they do not overwrite.
func (t *Trie[V]) Set(key []byte, value V) error {
	blob, err := t.codec.Encode(value)
	if err != nil {
		return &BuildError{Op: "encode value", Err: err}
	}
	n := t.root
	for _, b := range key {
		n = n.ensureChild(symbolOf(b))
	}
	term := n.ensureChild(symTerminator)
	idx := len(t.values)
	t.values = append(t.values, blob)
	term.values = append(term.values, idx)
	t.count++
	return nil
}

// Len reports the number of Set calls made so far, including repeats.
func (t *Trie[V]) Len() int { return t.count }
