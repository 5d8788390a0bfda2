package buffer

import (
	"github.com/google/uuid"

	"github.com/dshills/textbuf/rope"
)

// Snapshot is a point-in-time capture of a buffer. It shares its rope's
// subtrees with the buffer and with other snapshots, so captures are
// O(1) regardless of content size.
type Snapshot struct {
	BufferID uuid.UUID
	Content  rope.Rope
	Revision uint64
}

// Text returns the snapshot's full content.
func (s Snapshot) Text() string {
	return s.Content.String()
}

// Len returns the snapshot's byte length.
func (s Snapshot) Len() int {
	return s.Content.Len()
}

// Diffs reports whether two snapshots hold different content.
func (s Snapshot) Diffs(other Snapshot) bool {
	return !s.Content.Equal(other.Content)
}
