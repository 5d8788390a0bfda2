package rope

import (
	"io"
	"strings"
)

// Builder provides efficient incremental construction of a rope. It
// buffers writes into chunks and assembles a minimum-height tree when
// Build is called.
type Builder struct {
	pol    Policy
	chunks []Chunk
	buf    strings.Builder
	total  int
}

// NewBuilder creates a rope builder.
func NewBuilder(opts ...Option) *Builder {
	var pol Policy
	for _, opt := range opts {
		opt(&pol)
	}
	return &Builder{
		pol:    pol.withDefaults(),
		chunks: make([]Chunk, 0, 64),
	}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) {
	if len(s) == 0 {
		return
	}
	b.total += len(s)
	b.buf.WriteString(s)
	if b.buf.Len() >= b.policy().LeafMax*2 {
		b.flush()
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.WriteString(string(p))
	return len(p), nil
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) error {
	b.total++
	err := b.buf.WriteByte(c)
	if b.buf.Len() >= b.policy().LeafMax*2 {
		b.flush()
	}
	return err
}

// WriteRune appends a single rune.
func (b *Builder) WriteRune(r rune) (int, error) {
	n, err := b.buf.WriteRune(r)
	b.total += n
	if b.buf.Len() >= b.policy().LeafMax*2 {
		b.flush()
	}
	return n, err
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// policy returns the builder's policy, defaulted so the zero-value
// Builder is usable directly.
func (b *Builder) policy() Policy {
	if b.pol.LeafMax == 0 {
		return b.pol.withDefaults()
	}
	return b.pol
}

// flush converts buffered text into chunks.
func (b *Builder) flush() {
	if b.buf.Len() == 0 {
		return
	}
	s := b.buf.String()
	b.buf.Reset()
	b.chunks = append(b.chunks, splitIntoChunks(s, b.policy())...)
}

// Len returns the total number of bytes written so far.
func (b *Builder) Len() int {
	return b.total
}

// Reset clears the builder for reuse. The policy is kept.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buf.Reset()
	b.total = 0
}

// Build creates a rope from the accumulated text and resets the builder.
func (b *Builder) Build() Rope {
	b.flush()
	pol := b.policy()
	leaves := make([]*node, len(b.chunks))
	for i, c := range b.chunks {
		leaves[i] = newLeaf(c)
	}
	b.Reset()
	return Rope{root: buildMidpoint(leaves), pol: pol}
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader, opts ...Option) (Rope, error) {
	b := NewBuilder(opts...)
	if _, err := b.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return b.Build(), nil
}

// Join concatenates multiple ropes with a separator.
func Join(ropes []Rope, sep string) Rope {
	if len(ropes) == 0 {
		return New()
	}
	result := ropes[0]
	sepRope := FromString(sep)
	for _, r := range ropes[1:] {
		if sep != "" {
			result = result.Concat(sepRope)
		}
		result = result.Concat(r)
	}
	return result
}

// Repeat creates a rope by repeating a string n times.
func Repeat(s string, n int, opts ...Option) Rope {
	if n <= 0 || len(s) == 0 {
		return New(opts...)
	}
	b := NewBuilder(opts...)
	for i := 0; i < n; i++ {
		b.WriteString(s)
	}
	return b.Build()
}
