package rope

import "strings"

// node is a vertex of the weight-balanced binary tree. A node with a nil
// left child is a leaf and stores its text in chunk; internal nodes hold
// no text of their own. Nodes are never mutated after construction, and
// no node is ever empty: the empty rope is a nil root, not a zero-length
// leaf, which keeps concat and split total.
type node struct {
	weight int // byte length of the left subtree; 0 for leaves
	length int // byte length of the whole subtree
	height int // 1 for leaves
	left   *node
	right  *node
	chunk  Chunk
}

func newLeaf(c Chunk) *node {
	return &node{length: c.Len(), height: 1, chunk: c}
}

// newInternal wires two non-nil children under a fresh parent. Weight is
// derived from the new left child and height from both, so any reshaping
// routed through here keeps the cached summaries correct.
func newInternal(left, right *node) *node {
	h := left.height
	if right.height > h {
		h = right.height
	}
	return &node{
		weight: left.length,
		length: left.length + right.length,
		height: h + 1,
		left:   left,
		right:  right,
	}
}

func (n *node) isLeaf() bool { return n.left == nil }

// balanceFactor is left height minus right height. Internal nodes only.
func (n *node) balanceFactor() int {
	return n.left.height - n.right.height
}

// byteAt routes an index through cumulative weights: descending right
// skips the entire left subtree, so the weight is subtracted exactly
// once per right turn. The caller guarantees 0 <= i < n.length.
func (n *node) byteAt(i int) byte {
	for !n.isLeaf() {
		if i < n.weight {
			n = n.left
		} else {
			i -= n.weight
			n = n.right
		}
	}
	return n.chunk.At(i)
}

// rawConcat joins two subtrees with at most one allocation. Empty
// operands short-circuit so split's reconstruction terminates with
// collapsed trees, and two leaves that fit a single span merge instead
// of deepening the tree.
func rawConcat(l, r *node, pol Policy) *node {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	if l.isLeaf() && r.isLeaf() && l.length+r.length <= pol.LeafMax {
		return newLeaf(l.chunk.Append(r.chunk))
	}
	return newInternal(l, r)
}

// join concatenates while keeping the AVL height invariant. When the
// operands' heights are within one of each other it is the same single
// allocation as rawConcat; otherwise it descends the taller spine and
// rebalances every node rebuilt on the way back up, costing O(|h1-h2|).
func join(l, r *node, pol Policy) *node {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	if l.isLeaf() && r.isLeaf() && l.length+r.length <= pol.LeafMax {
		return newLeaf(l.chunk.Append(r.chunk))
	}
	switch {
	case l.height > r.height+1:
		return balanceNode(newInternal(l.left, join(l.right, r, pol)))
	case r.height > l.height+1:
		return balanceNode(newInternal(join(l, r.left, pol), r.right))
	default:
		return newInternal(l, r)
	}
}

// splitNode partitions n at byte position i. It reads but never mutates
// the input; untouched subtrees are shared by reference into the result.
// Each level performs exactly one merge, so a balanced tree allocates
// O(log n) nodes. The caller guarantees 0 <= i <= n.length.
func splitNode(n *node, i int, pol Policy) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if n.isLeaf() {
		switch {
		case i <= 0:
			return nil, n
		case i >= n.length:
			return n, nil
		}
		lc, rc := n.chunk.Cut(i)
		return newLeaf(lc), newLeaf(rc)
	}
	switch {
	case i == n.weight:
		return n.left, n.right
	case i < n.weight:
		ll, lr := splitNode(n.left, i, pol)
		return ll, pol.merge(lr, n.right)
	default:
		rl, rr := splitNode(n.right, i-n.weight, pol)
		return pol.merge(n.left, rl), rr
	}
}

// appendTo writes the subtree's text to the builder in order.
func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		sb.WriteString(n.chunk.String())
		return
	}
	n.left.appendTo(sb)
	n.right.appendTo(sb)
}

// appendRange writes the text in [start, end) to the builder. The caller
// guarantees 0 <= start <= end <= n.length.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	if n.isLeaf() {
		sb.WriteString(n.chunk.String()[start:end])
		return
	}
	if start < n.weight {
		leftEnd := end
		if leftEnd > n.weight {
			leftEnd = n.weight
		}
		n.left.appendRange(sb, start, leftEnd)
	}
	if end > n.weight {
		rightStart := start - n.weight
		if rightStart < 0 {
			rightStart = 0
		}
		n.right.appendRange(sb, rightStart, end-n.weight)
	}
}

// collectChunks appends the subtree's leaf spans to out in order.
func collectChunks(n *node, out *[]Chunk) {
	if n.isLeaf() {
		*out = append(*out, n.chunk)
		return
	}
	collectChunks(n.left, out)
	collectChunks(n.right, out)
}

// treeFromString chunks text at the policy's bounds and builds a
// minimum-height tree over the resulting leaves.
func treeFromString(s string, pol Policy) *node {
	chunks := splitIntoChunks(s, pol)
	if len(chunks) == 0 {
		return nil
	}
	leaves := make([]*node, len(chunks))
	for i, c := range chunks {
		leaves[i] = newLeaf(c)
	}
	return buildMidpoint(leaves)
}
