package dat

const initialCapacity = 1024

// queueEntry pairs a trie node awaiting placement with the double-array
// index its parent has already reserved for it.
type queueEntry struct {
	node  *trieNode
	index int
}

// ToDoubleArray consumes t and compiles it into an immutable DoubleArray,
// walking the trie breadth-first and placing each node's children at a
// base offset under which none of them collide with an already-occupied
// slot. See compileState.baseSearch for the placement algorithm.
func (t *Trie[V]) ToDoubleArray() (*DoubleArray[V], error) {
	cs := newCompileState(t)
	cs.base[1] = 0 // filled in once the root's own children are placed
	queue := []queueEntry{{node: t.root, index: 1}}

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		syms := sortedSymbols(e.node)
		if len(syms) == 0 {
			continue
		}

		b, err := cs.baseSearch(syms)
		if err != nil {
			return nil, &BuildError{Op: "base search", Err: err}
		}
		cs.base[e.index] = int32(b)

		for _, sym := range syms {
			j := b + sym
			cs.check[j] = int32(e.index)
			cs.free.occupy(j)
			child := e.node.child(sym)
			if sym == symTerminator {
				cs.base[j] = int32(-(len(cs.leafValues) + 1))
				cs.leafValues = append(cs.leafValues, child.values)
				continue
			}
			if len(child.edges) == 0 {
				// byte edge with no $ and no further children: unreachable
				// in practice since Set always appends a $ terminus, but
				// handled for robustness.
				continue
			}
			queue = append(queue, queueEntry{node: child, index: j})
		}
	}

	// The value table is laid out per leaf as contiguous groups, in the
	// order leaves were discovered by the BFS above, so DoubleArray.Get
	// can slice out a leaf's group by its recorded start/count.
	groups := make([]valueGroup, len(cs.leafValues))
	var flat [][]byte
	for i, idxs := range cs.leafValues {
		start := len(flat)
		for _, vi := range idxs {
			flat = append(flat, t.values[vi])
		}
		groups[i] = valueGroup{start: start, count: len(idxs)}
	}

	n := cs.shrinkToFit()
	return &DoubleArray[V]{
		base:   cs.base[:n],
		check:  cs.check[:n],
		values: flat,
		groups: groups,
		codec:  t.codec,
	}, nil
}

// shrinkToFit trims the trailing run of never-occupied capacity added by
// doubling during base search, the way a double-array build trims its
// working arrays down to the slots actually used before handing the
// result to a reader.
func (cs *compileState) shrinkToFit() int {
	last := 1
	for j := cs.size - 1; j > 1; j-- {
		if cs.check[j] != 0 {
			last = j
			break
		}
	}
	return last + 1
}

// valueGroup names the contiguous run in DoubleArray.values belonging to
// one leaf, in the order that leaf's values were inserted.
type valueGroup struct {
	start int
	count int
}

type compileState struct {
	base       []int32
	check      []int32
	free       *freeList
	size       int
	leafValues [][]int
}

func newCompileState[V any](t *Trie[V]) *compileState {
	cs := &compileState{
		base:  make([]int32, initialCapacity),
		check: make([]int32, initialCapacity),
		free:  newFreeList(initialCapacity),
		size:  initialCapacity,
	}
	cs.free.occupy(0) // slot 0 is reserved, never targetable
	cs.free.occupy(1) // slot 1 is the root
	return cs
}

func (cs *compileState) grow(minSize int) {
	size := cs.size
	for size <= minSize {
		size *= 2
	}
	base := make([]int32, size)
	copy(base, cs.base)
	check := make([]int32, size)
	copy(check, cs.check)
	cs.base = base
	cs.check = check
	cs.free.grow(size)
	cs.size = size
}

// baseSearch finds the smallest base b >= 1 such that every slot b+sym is
// free, per the classic Aoe double-array construction: try each free slot
// as a candidate home for the first symbol, then check the rest of the
// symbol set against it, advancing past the candidate on any conflict.
// Scanning starts at f = syms[0]+1 so the candidate b = f-syms[0] can
// never come out below 1: interior nodes must get a positive base, since
// a negative base is the only signal Get and the binary format have for
// "this slot is a leaf".
func (cs *compileState) baseSearch(syms []int) (int, error) {
	f := cs.free.firstFree(syms[0] + 1)
	for {
		b := f - syms[0]
		if cs.maxIndex(b, syms) >= cs.size {
			cs.grow(cs.maxIndex(b, syms))
		}
		ok := true
		for _, sym := range syms {
			if !cs.free.isFree(b + sym) {
				ok = false
				break
			}
		}
		if ok {
			return b, nil
		}
		f = cs.free.firstFree(f + 1)
	}
}

func (cs *compileState) maxIndex(b int, syms []int) int {
	return b + syms[len(syms)-1]
}

// sortedSymbols returns a node's child symbols in ascending order, with
// the terminator (0) naturally sorting first since trieNode.edges is
// already maintained in ascending order by construction.
func sortedSymbols(n *trieNode) []int {
	if len(n.edges) == 0 {
		return nil
	}
	syms := make([]int, len(n.edges))
	for i, e := range n.edges {
		syms[i] = e.sym
	}
	return syms
}
