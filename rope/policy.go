package rope

// Leaf size defaults. LeafMin is the span length below which adjacent
// leaves become coalescing candidates; LeafMax is the largest span a
// single leaf may hold.
const (
	DefaultLeafMin = 128
	DefaultLeafMax = 256
)

// BalanceStrategy selects how the tree's height invariant is maintained.
type BalanceStrategy uint8

const (
	// BalanceIncremental applies the standard AVL rotation cases to every
	// node rebuilt during a structural change, so each public operation
	// returns a height-balanced tree. This is the default.
	BalanceIncremental BalanceStrategy = iota

	// BalanceOnRebuild keeps concatenation a single O(1) allocation and
	// rebuilds the whole tree from its leaf sequence once the height
	// drifts past the AVL ceiling. The rebuild also coalesces undersized
	// adjacent leaves.
	BalanceOnRebuild
)

// BoundaryFunc snaps a split position so it does not cut through a
// multi-byte text unit. It may only move the position toward zero and
// must return a value in [0, pos]. A nil policy takes byte positions
// verbatim.
type BoundaryFunc func(r Rope, pos int) int

// Policy bundles the tunable behavior of a rope: leaf size bounds, the
// balancing strategy, and the optional boundary-snap hook. The zero value
// means "defaults".
type Policy struct {
	LeafMin  int
	LeafMax  int
	Strategy BalanceStrategy
	Boundary BoundaryFunc
}

// withDefaults fills unset fields so internal code never divides by zero
// or loops on a zero-size leaf bound.
func (p Policy) withDefaults() Policy {
	if p.LeafMax <= 0 {
		p.LeafMax = DefaultLeafMax
	}
	if p.LeafMin <= 0 || p.LeafMin >= p.LeafMax {
		p.LeafMin = p.LeafMax / 2
		if p.LeafMin < 1 {
			p.LeafMin = 1
		}
	}
	return p
}

// merge joins two subtrees according to the balancing strategy.
func (p Policy) merge(l, r *node) *node {
	if p.Strategy == BalanceOnRebuild {
		return rawConcat(l, r, p)
	}
	return join(l, r, p)
}

// snap applies the boundary policy to a split position.
func (p Policy) snap(r Rope, pos int) int {
	if p.Boundary == nil {
		return pos
	}
	if s := p.Boundary(r, pos); s >= 0 && s <= pos {
		return s
	}
	return pos
}

// Option is a functional option for configuring a Rope at construction.
// Derived ropes inherit the configuration of the rope they came from.
type Option func(*Policy)

// WithLeafBounds sets the leaf coalescing and split thresholds.
// Values <= 0 fall back to the defaults.
func WithLeafBounds(min, max int) Option {
	return func(p *Policy) {
		p.LeafMin = min
		p.LeafMax = max
	}
}

// WithStrategy selects the balancing strategy.
func WithStrategy(s BalanceStrategy) Option {
	return func(p *Policy) {
		p.Strategy = s
	}
}

// WithBoundary installs a boundary-snap policy applied by Split and the
// operations built on it.
func WithBoundary(f BoundaryFunc) Option {
	return func(p *Policy) {
		p.Boundary = f
	}
}

// WithPolicy replaces the whole policy at once.
func WithPolicy(pol Policy) Option {
	return func(p *Policy) {
		*p = pol
	}
}
