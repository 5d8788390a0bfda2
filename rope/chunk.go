package rope

// Chunk represents a bounded run of text stored in a leaf node.
// Chunks are immutable once created. Cutting a chunk produces two views
// over the same backing storage with no copying; storage is only copied
// when two chunks are merged into a fresh span.
type Chunk struct {
	data string
}

// NewChunk creates a chunk from a string.
func NewChunk(s string) Chunk {
	return Chunk{data: s}
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.data
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.data)
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// At returns the byte at offset i. The caller guarantees bounds.
func (c Chunk) At(i int) byte {
	return c.data[i]
}

// Cut splits the chunk at a byte offset, returning two chunks that share
// the original backing storage.
func (c Chunk) Cut(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return Chunk{data: c.data[:offset]}, Chunk{data: c.data[offset:]}
}

// Append merges another chunk onto this one, allocating an exclusive
// combined span. This is the write path: shared storage is never mutated.
func (c Chunk) Append(other Chunk) Chunk {
	if c.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return c
	}
	return Chunk{data: c.data + other.data}
}

// splitIntoChunks splits a string into spans no larger than pol.LeafMax,
// aiming near the midpoint of the leaf bounds and preferring to cut after
// a newline, falling back to a UTF-8 sequence boundary.
func splitIntoChunks(s string, pol Policy) []Chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= pol.LeafMax {
		return []Chunk{NewChunk(s)}
	}

	target := (pol.LeafMin + pol.LeafMax) / 2
	if target <= 0 {
		target = pol.LeafMax
	}

	var chunks []Chunk
	remaining := s
	for len(remaining) > 0 {
		if len(remaining) <= pol.LeafMax {
			chunks = append(chunks, NewChunk(remaining))
			break
		}
		cut := findCutPoint(remaining, target, pol)
		chunks = append(chunks, NewChunk(remaining[:cut]))
		remaining = remaining[cut:]
	}
	return chunks
}

// findCutPoint finds a split position near target. It searches a small
// window for a newline first, then settles for a UTF-8 boundary. The
// cut never exceeds LeafMax: a newline just past the target must not
// produce an oversized leaf.
func findCutPoint(s string, target int, pol Policy) int {
	limit := pol.LeafMax
	if limit > len(s) {
		limit = len(s)
	}
	if target >= limit {
		return limit
	}
	if target <= 0 {
		target = 1
	}

	window := pol.LeafMin / 4
	if window < 1 {
		window = 1
	}
	searchEnd := target + window
	if searchEnd > limit {
		searchEnd = limit
	}
	searchStart := target - window
	if searchStart < 0 {
		searchStart = 0
	}

	for i := target; i < searchEnd; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= searchStart; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	// No newline nearby; back up to the start of the UTF-8 sequence.
	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		// Degenerate run of continuation bytes; cut at the target anyway.
		return target
	}
	return pos
}

// isUTF8Start returns true if the byte begins a UTF-8 sequence.
// Continuation bytes have the form 10xxxxxx.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
