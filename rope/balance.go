package rope

import "math"

// rotateRight lifts n's left child to the root of the subtree. Both
// rebuilt nodes go through newInternal, which recomputes weight from the
// reshaped left subtree before deriving height, so neither can drift out
// of sync with the new structure.
func rotateRight(n *node) *node {
	l := n.left
	return newInternal(l.left, newInternal(l.right, n.right))
}

// rotateLeft lifts n's right child to the root of the subtree.
func rotateLeft(n *node) *node {
	r := n.right
	return newInternal(newInternal(n.left, r.left), r.right)
}

// balanceNode resolves an over-tilted node using the four standard AVL
// cases. The input's children are themselves height-balanced and its
// balance factor is at most two in magnitude, which is what join
// produces while reassembling a path.
func balanceNode(n *node) *node {
	bf := n.balanceFactor()
	switch {
	case bf > 1:
		if n.left.balanceFactor() < 0 {
			// Left-right case: rotate the left child first.
			n = newInternal(rotateLeft(n.left), n.right)
		}
		return rotateRight(n)
	case bf < -1:
		if n.right.balanceFactor() > 0 {
			// Right-left case: rotate the right child first.
			n = newInternal(n.left, rotateRight(n.right))
		}
		return rotateLeft(n)
	default:
		return n
	}
}

// maxHeightFor is the AVL height ceiling 1.44*log2(n+2) for a tree
// holding n bytes, with leaves counting as height one.
func maxHeightFor(n int) int {
	if n <= 1 {
		return 1
	}
	return int(1.44*math.Log2(float64(n)+2)) + 1
}

// rebuildTree flattens the tree into its in-order chunk sequence,
// coalesces adjacent spans that fit a single leaf, and rebuilds a
// minimum-height tree by midpoint recursion. O(n); used by the
// BalanceOnRebuild strategy and as an explicit defragmentation pass.
func rebuildTree(n *node, pol Policy) *node {
	if n == nil {
		return nil
	}
	chunks := make([]Chunk, 0, 16)
	collectChunks(n, &chunks)
	chunks = coalesceChunks(chunks, pol)
	leaves := make([]*node, len(chunks))
	for i, c := range chunks {
		leaves[i] = newLeaf(c)
	}
	return buildMidpoint(leaves)
}

// coalesceChunks merges runs of adjacent spans whose combined length
// fits a single leaf. This is where undersized leaves left behind by
// deletes are folded back together.
func coalesceChunks(chunks []Chunk, pol Policy) []Chunk {
	if len(chunks) <= 1 {
		return chunks
	}
	out := make([]Chunk, 0, len(chunks))
	out = append(out, chunks[0])
	for _, c := range chunks[1:] {
		last := out[len(out)-1]
		if last.Len()+c.Len() <= pol.LeafMax {
			out[len(out)-1] = last.Append(c)
		} else {
			out = append(out, c)
		}
	}
	return out
}

// buildMidpoint builds a minimum-height tree over an ordered leaf
// sequence by splitting at the midpoint and joining the halves.
func buildMidpoint(leaves []*node) *node {
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return leaves[0]
	}
	mid := len(leaves) / 2
	return newInternal(buildMidpoint(leaves[:mid]), buildMidpoint(leaves[mid:]))
}
