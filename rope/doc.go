// Package rope provides a persistent, weight-balanced binary rope for
// efficient text storage and manipulation.
//
// A rope is a binary tree whose leaves hold bounded runs of text and
// whose internal nodes carry the byte length of their left subtree (the
// weight), used to route index lookups. Concatenation allocates a single
// internal node; splitting descends one path and reassembles both halves
// from shared subtrees. Insert and delete are built strictly from split
// and concat.
//
// Key properties:
//   - O(log n) index, split, insert, and delete on balanced trees
//   - Operations return new ropes and never modify the inputs, so any
//     number of historical rope values stay valid and readable without
//     locks, which is what makes snapshots and undo cheap
//   - AVL-style height maintenance, either incrementally through
//     rotations or by periodic full rebuild, selected by Policy
//   - Leaf spans are views over shared immutable storage; splitting
//     copies nothing, merging allocates an exclusive combined span
//
// Basic usage:
//
//	r := rope.FromString("hello world")
//	r, _ = r.Insert(5, ",")      // "hello, world"
//	r, _ = r.Delete(0, 7)        // "world"
//	text := r.String()
//
// Positions are byte offsets. The optional Policy boundary hook (see
// SnapUTF8 and SnapGraphemes) keeps splits off multi-byte character
// interiors when the host needs that guarantee.
package rope
