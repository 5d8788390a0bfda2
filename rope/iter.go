package rope

import "unicode/utf8"

// ChunkIterator walks the rope's leaf spans in order. Iterators are lazy
// and restartable: requesting a fresh iterator from the same rope value
// always yields the same sequence.
type ChunkIterator struct {
	stack      []*node
	chunk      Chunk
	offset     int
	nextOffset int
}

// Chunks returns an iterator over all leaf spans in the rope.
func (r Rope) Chunks() *ChunkIterator {
	it := &ChunkIterator{stack: make([]*node, 0, 16)}
	it.pushLeftSpine(r.root)
	return it
}

func (it *ChunkIterator) pushLeftSpine(n *node) {
	for n != nil {
		it.stack = append(it.stack, n)
		n = n.left
	}
}

// Next advances to the next chunk. Returns false when the traversal is
// complete.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		n := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		if n.isLeaf() {
			it.chunk = n.chunk
			it.offset = it.nextOffset
			it.nextOffset += n.length
			return true
		}
		// The left spine below this node was already consumed; continue
		// with the right subtree.
		it.pushLeftSpine(n.right)
	}
	return false
}

// Chunk returns the current chunk.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset of the start of the current chunk.
func (it *ChunkIterator) Offset() int {
	return it.offset
}

// ByteIterator walks the rope byte by byte.
type ByteIterator struct {
	chunks *ChunkIterator
	data   string
	idx    int
	offset int
}

// Bytes returns an iterator over all bytes in the rope.
func (r Rope) Bytes() *ByteIterator {
	return &ByteIterator{chunks: r.Chunks(), idx: -1, offset: -1}
}

// Next advances to the next byte. Returns false at the end.
func (it *ByteIterator) Next() bool {
	it.idx++
	it.offset++
	for it.idx >= len(it.data) {
		if !it.chunks.Next() {
			return false
		}
		it.data = it.chunks.Chunk().String()
		it.idx = 0
	}
	return true
}

// Byte returns the current byte.
func (it *ByteIterator) Byte() byte {
	return it.data[it.idx]
}

// Offset returns the byte offset of the current byte.
func (it *ByteIterator) Offset() int {
	return it.offset
}

// RuneIterator decodes the rope as UTF-8, tolerating runes that span
// leaf boundaries.
type RuneIterator struct {
	chunks *ChunkIterator
	buf    []byte
	drain  bool
	r      rune
	size   int
	pos    int
	next   int
}

// Runes returns an iterator over all runes in the rope.
func (r Rope) Runes() *RuneIterator {
	return &RuneIterator{chunks: r.Chunks()}
}

// Next advances to the next rune. Returns false at the end.
func (it *RuneIterator) Next() bool {
	for {
		if len(it.buf) > 0 && (it.drain || utf8.FullRune(it.buf)) {
			it.r, it.size = utf8.DecodeRune(it.buf)
			it.buf = it.buf[it.size:]
			it.pos = it.next
			it.next += it.size
			return true
		}
		if it.drain {
			return false
		}
		if !it.chunks.Next() {
			it.drain = true
			continue
		}
		it.buf = append(it.buf, it.chunks.Chunk().String()...)
	}
}

// Rune returns the current rune.
func (it *RuneIterator) Rune() rune {
	return it.r
}

// Size returns the byte size of the current rune.
func (it *RuneIterator) Size() int {
	return it.size
}

// Offset returns the byte offset of the current rune.
func (it *RuneIterator) Offset() int {
	return it.pos
}
