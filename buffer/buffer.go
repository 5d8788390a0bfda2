package buffer

import (
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/textbuf/history"
	"github.com/dshills/textbuf/rope"
)

// Buffer is a mutable text buffer backed by a persistent rope. It
// serializes edits behind a mutex while reads of captured snapshots
// proceed without coordination, since every rope value is immutable.
type Buffer struct {
	mu       sync.RWMutex
	id       uuid.UUID
	content  rope.Rope
	revision uint64
	hist     *history.History
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	cfg := applyOptions(opts)
	return &Buffer{
		id:      cfg.id,
		content: rope.New(cfg.ropeOpts...),
		hist:    cfg.hist,
	}
}

// FromString creates a buffer holding the given text.
func FromString(s string, opts ...Option) *Buffer {
	cfg := applyOptions(opts)
	return &Buffer{
		id:      cfg.id,
		content: rope.FromString(s, cfg.ropeOpts...),
		hist:    cfg.hist,
	}
}

// FromReader creates a buffer from an io.Reader.
func FromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	cfg := applyOptions(opts)
	content, err := rope.FromReader(r, cfg.ropeOpts...)
	if err != nil {
		return nil, fmt.Errorf("buffer: read content: %w", err)
	}
	return &Buffer{
		id:      cfg.id,
		content: content,
		hist:    cfg.hist,
	}, nil
}

// ID returns the buffer's identity, stable across its lifetime.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Len returns the byte length of the content.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.Len()
}

// Revision returns the edit counter. It increments on every successful
// mutation, including undo and redo.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Text returns the full content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.String()
}

// TextRange returns the content in the byte range [start, end).
func (b *Buffer) TextRange(start, end int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.Report(start, end)
}

// ByteAt returns the byte at offset i.
func (b *Buffer) ByteAt(i int) (byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.At(i)
}

// RuneAt decodes the rune starting at byte offset i.
func (b *Buffer) RuneAt(i int) (rune, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	end := i + utf8.UTFMax
	if end > b.content.Len() {
		end = b.content.Len()
	}
	s, err := b.content.Report(i, end)
	if err != nil || s == "" {
		return 0, rope.ErrOutOfRange
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Insert inserts text at a byte position.
func (b *Buffer) Insert(pos int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := b.content.Insert(pos, text)
	if err != nil {
		return fmt.Errorf("buffer: insert at %d: %w", pos, err)
	}
	b.commit(next, fmt.Sprintf("insert %d bytes at %d", len(text), pos))
	return nil
}

// Delete removes the byte range [start, end).
func (b *Buffer) Delete(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := b.content.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer: delete [%d, %d): %w", start, end, err)
	}
	b.commit(next, fmt.Sprintf("delete [%d, %d)", start, end))
	return nil
}

// Replace substitutes the byte range [start, end) with text. The
// replacement is a single revision: undo restores the original range.
func (b *Buffer) Replace(start, end int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := b.content.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer: replace [%d, %d): %w", start, end, err)
	}
	next, err = next.Insert(start, text)
	if err != nil {
		return fmt.Errorf("buffer: replace [%d, %d): %w", start, end, err)
	}
	b.commit(next, fmt.Sprintf("replace [%d, %d)", start, end))
	return nil
}

// Undo restores the buffer to the state before the most recent edit.
func (b *Buffer) Undo() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hist == nil {
		return history.ErrNothingToUndo
	}
	prev, err := b.hist.Undo(b.content)
	if err != nil {
		return err
	}
	b.content = prev
	b.revision++
	return nil
}

// Redo reapplies the most recently undone edit.
func (b *Buffer) Redo() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.hist == nil {
		return history.ErrNothingToRedo
	}
	next, err := b.hist.Redo(b.content)
	if err != nil {
		return err
	}
	b.content = next
	b.revision++
	return nil
}

// CanUndo reports whether an undo step is available.
func (b *Buffer) CanUndo() bool {
	return b.hist != nil && b.hist.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (b *Buffer) CanRedo() bool {
	return b.hist != nil && b.hist.CanRedo()
}

// Snapshot captures the current content and revision. The snapshot is
// immutable and remains valid however the buffer is edited afterwards.
func (b *Buffer) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Snapshot{
		BufferID: b.id,
		Content:  b.content,
		Revision: b.revision,
	}
}

// Restore replaces the buffer content with a snapshot's content,
// recording the current state in history first.
func (b *Buffer) Restore(s Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commit(s.Content, fmt.Sprintf("restore revision %d", s.Revision))
}

// commit installs new content, recording the outgoing state. Callers
// hold the write lock.
func (b *Buffer) commit(next rope.Rope, label string) {
	if b.hist != nil {
		b.hist.Push(b.content, label)
	}
	b.content = next
	b.revision++
}
