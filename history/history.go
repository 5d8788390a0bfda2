package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/textbuf/rope"
)

// Errors reported when navigation runs past either end of the history.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// DefaultMaxEntries bounds how many revisions are retained before the
// oldest are discarded.
const DefaultMaxEntries = 1000

// Revision is a retained rope state. Because ropes are persistent,
// holding a revision costs only the nodes that differ from its
// neighbors; unchanged subtrees are shared.
type Revision struct {
	Rope  rope.Rope
	Seq   uint64
	Time  time.Time
	Label string
}

// History tracks prior rope states for undo and redo. All methods are
// safe for concurrent use.
type History struct {
	mu         sync.Mutex
	undo       []Revision
	redo       []Revision
	seq        uint64
	maxEntries int
}

// New creates a history with the default retention limit.
func New() *History {
	return &History{maxEntries: DefaultMaxEntries}
}

// NewWithLimit creates a history retaining at most max revisions.
// A non-positive max means unlimited.
func NewWithLimit(max int) *History {
	return &History{maxEntries: max}
}

// Push records a rope state as the new undo top and clears any pending
// redo states, since a fresh edit invalidates the redone timeline.
func (h *History) Push(r rope.Rope, label string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	h.undo = append(h.undo, Revision{
		Rope:  r,
		Seq:   h.seq,
		Time:  time.Now(),
		Label: label,
	})
	h.redo = h.redo[:0]

	if h.maxEntries > 0 && len(h.undo) > h.maxEntries {
		drop := len(h.undo) - h.maxEntries
		h.undo = append(h.undo[:0], h.undo[drop:]...)
	}
}

// Undo pops the most recent revision, pushing the current state onto
// the redo stack, and returns the rope to restore.
func (h *History) Undo(current rope.Rope) (rope.Rope, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		return rope.Rope{}, ErrNothingToUndo
	}
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	h.seq++
	h.redo = append(h.redo, Revision{
		Rope:  current,
		Seq:   h.seq,
		Time:  time.Now(),
		Label: top.Label,
	})
	return top.Rope, nil
}

// Redo pops the most recent undone revision, pushing the current state
// back onto the undo stack, and returns the rope to restore.
func (h *History) Redo(current rope.Rope) (rope.Rope, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return rope.Rope{}, ErrNothingToRedo
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	h.seq++
	h.undo = append(h.undo, Revision{
		Rope:  current,
		Seq:   h.seq,
		Time:  time.Now(),
		Label: top.Label,
	})
	return top.Rope, nil
}

// CanUndo reports whether any revision is available to undo.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

// CanRedo reports whether any undone revision is available to redo.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// UndoCount returns the number of retained undo revisions.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// RedoCount returns the number of retained redo revisions.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo)
}

// Peek returns the revision Undo would restore without popping it.
func (h *History) Peek() (Revision, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undo) == 0 {
		return Revision{}, false
	}
	return h.undo[len(h.undo)-1], true
}

// Clear discards all retained revisions.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

// SetMaxEntries changes the retention limit, discarding the oldest undo
// revisions if the new limit is already exceeded. A non-positive max
// means unlimited.
func (h *History) SetMaxEntries(max int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.maxEntries = max
	if max > 0 && len(h.undo) > max {
		drop := len(h.undo) - max
		h.undo = append(h.undo[:0], h.undo[drop:]...)
	}
}
