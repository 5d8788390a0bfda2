package buffer

import (
	"github.com/google/uuid"

	"github.com/dshills/textbuf/history"
	"github.com/dshills/textbuf/rope"
)

type config struct {
	id       uuid.UUID
	ropeOpts []rope.Option
	hist     *history.History
}

// Option configures a buffer at construction.
type Option func(*config)

func applyOptions(opts []Option) config {
	cfg := config{id: uuid.New()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithID sets an explicit buffer identity instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(c *config) {
		c.id = id
	}
}

// WithRopeOptions passes options through to the underlying rope, such
// as leaf bounds, balance strategy, or a boundary policy.
func WithRopeOptions(opts ...rope.Option) Option {
	return func(c *config) {
		c.ropeOpts = append(c.ropeOpts, opts...)
	}
}

// WithHistory attaches an undo/redo history to the buffer.
func WithHistory(h *history.History) Option {
	return func(c *config) {
		c.hist = h
	}
}
