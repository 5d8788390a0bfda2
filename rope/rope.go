package rope

import (
	"errors"
	"strings"
)

// Errors reported for caller contract violations. They are synchronous
// and non-retryable; a failing operation returns before producing a new
// rope, so the input rope is always left valid.
var (
	// ErrOutOfRange reports an index lookup at or past the end.
	ErrOutOfRange = errors.New("rope: index out of range")

	// ErrInvalidPosition reports a split or insert position past the end.
	ErrInvalidPosition = errors.New("rope: position out of range")

	// ErrInvalidRange reports a delete or slice range with start > end or
	// end past the end.
	ErrInvalidRange = errors.New("rope: invalid range")
)

// Rope is an immutable text sequence backed by a weight-balanced binary
// tree. Operations return new Rope values and share every untouched
// subtree with the inputs; the originals are never modified. Any number
// of rope values may therefore be retained and read concurrently without
// coordination.
//
// The zero value is the empty rope with default policy.
type Rope struct {
	root *node
	pol  Policy
}

// New creates an empty rope.
func New(opts ...Option) Rope {
	var pol Policy
	for _, opt := range opts {
		opt(&pol)
	}
	return Rope{pol: pol.withDefaults()}
}

// FromString creates a rope from a string, chunking it at the policy's
// leaf bounds.
func FromString(s string, opts ...Option) Rope {
	r := New(opts...)
	r.root = treeFromString(s, r.pol)
	return r
}

// Len returns the total byte length. O(1): every node caches its
// subtree length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.length
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.root == nil
}

// At returns the byte at index i.
func (r Rope) At(i int) (byte, error) {
	if i < 0 || r.root == nil || i >= r.root.length {
		return 0, ErrOutOfRange
	}
	return r.root.byteAt(i), nil
}

// String returns the full text. Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.root.length)
	r.root.appendTo(&sb)
	return sb.String()
}

// Report returns the text in the byte range [start, end) as a string.
func (r Rope) Report(start, end int) (string, error) {
	if start < 0 || start > end || end > r.Len() {
		return "", ErrInvalidRange
	}
	if r.root == nil || start == end {
		return "", nil
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String(), nil
}

// Concat joins two ropes. Empty operands short-circuit and two leaves
// that fit a single span merge in place of a new internal node;
// otherwise the default strategy rebalances while joining and the
// rebuild strategy allocates exactly one node.
func (r Rope) Concat(other Rope) Rope {
	pol := r.pol.withDefaults()
	out := Rope{root: pol.merge(r.root, other.root), pol: pol}
	return out.maybeRebuild()
}

// Split partitions the rope at i, returning the contents of [0, i) and
// [i, len). Either half may be empty. The receiver is unchanged and
// remains valid alongside both halves.
func (r Rope) Split(i int) (Rope, Rope, error) {
	if i < 0 || i > r.Len() {
		return Rope{}, Rope{}, ErrInvalidPosition
	}
	pol := r.pol.withDefaults()
	i = pol.snap(r, i)
	l, rt := splitNode(r.root, i, pol)
	return Rope{root: l, pol: pol}, Rope{root: rt, pol: pol}, nil
}

// Insert inserts text at pos. Built strictly from split and concat: any
// correctness argument reduces to those two operations.
func (r Rope) Insert(pos int, text string) (Rope, error) {
	if pos < 0 || pos > r.Len() {
		return Rope{}, ErrInvalidPosition
	}
	if len(text) == 0 {
		return r, nil
	}
	pol := r.pol.withDefaults()
	pos = pol.snap(r, pos)
	l, rt := splitNode(r.root, pos, pol)
	mid := treeFromString(text, pol)
	out := Rope{root: pol.merge(pol.merge(l, mid), rt), pol: pol}
	return out.maybeRebuild(), nil
}

// Delete removes the byte range [start, end). Deleting an empty range
// returns an equivalent rope.
func (r Rope) Delete(start, end int) (Rope, error) {
	if start < 0 || start > end || end > r.Len() {
		return Rope{}, ErrInvalidRange
	}
	if start == end {
		return r, nil
	}
	pol := r.pol.withDefaults()
	start = pol.snap(r, start)
	end = pol.snap(r, end)
	if end <= start {
		return r, nil
	}
	l, rest := splitNode(r.root, start, pol)
	_, rt := splitNode(rest, end-start, pol)
	out := Rope{root: pol.merge(l, rt), pol: pol}
	return out.maybeRebuild(), nil
}

// Slice returns the byte range [start, end) as a rope, sharing all
// untouched subtrees with the receiver.
func (r Rope) Slice(start, end int) (Rope, error) {
	if start < 0 || start > end || end > r.Len() {
		return Rope{}, ErrInvalidRange
	}
	pol := r.pol.withDefaults()
	start = pol.snap(r, start)
	end = pol.snap(r, end)
	if end < start {
		end = start
	}
	left, _ := splitNode(r.root, end, pol)
	_, mid := splitNode(left, start, pol)
	return Rope{root: mid, pol: pol}, nil
}

// Equal reports whether two ropes hold the same text. It compares
// content, not structure.
func (r Rope) Equal(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	a := r.Bytes()
	b := other.Bytes()
	for a.Next() {
		if !b.Next() || a.Byte() != b.Byte() {
			return false
		}
	}
	return !b.Next()
}

// Height returns the height of the tree; zero for the empty rope.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height
}

// Balanced reports whether the tree height is within the AVL ceiling for
// its length.
func (r Rope) Balanced() bool {
	if r.root == nil {
		return true
	}
	return r.root.height <= maxHeightFor(r.root.length)
}

// Rebalance rebuilds the rope into a minimum-height tree, coalescing
// undersized adjacent leaves along the way. O(n); useful as a periodic
// defragmentation pass regardless of strategy.
func (r Rope) Rebalance() Rope {
	pol := r.pol.withDefaults()
	return Rope{root: rebuildTree(r.root, pol), pol: pol}
}

// maybeRebuild restores the height invariant for the rebuild strategy.
// Under the incremental strategy joins already maintained it.
func (r Rope) maybeRebuild() Rope {
	if r.pol.Strategy != BalanceOnRebuild || r.root == nil {
		return r
	}
	if r.root.height > maxHeightFor(r.root.length) {
		r.root = rebuildTree(r.root, r.pol)
	}
	return r
}
