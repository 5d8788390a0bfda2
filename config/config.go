package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textbuf/rope"
)

// Config holds tunable settings for ropes, buffers, and history,
// loaded from a TOML file.
type Config struct {
	Rope    RopeConfig    `toml:"rope"`
	History HistoryConfig `toml:"history"`
}

// RopeConfig selects leaf bounds, balance strategy, and boundary
// policy for new ropes.
type RopeConfig struct {
	LeafMin  int    `toml:"leaf_min"`
	LeafMax  int    `toml:"leaf_max"`
	Balance  string `toml:"balance"`
	Boundary string `toml:"boundary"`
}

// HistoryConfig bounds undo retention.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// Recognized balance strategy names.
const (
	BalanceIncremental = "incremental"
	BalanceRebuild     = "rebuild"
)

// Recognized boundary policy names.
const (
	BoundaryNone      = "none"
	BoundaryUTF8      = "utf8"
	BoundaryGraphemes = "graphemes"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Rope: RopeConfig{
			LeafMin:  rope.DefaultLeafMin,
			LeafMax:  rope.DefaultLeafMax,
			Balance:  BalanceIncremental,
			Boundary: BoundaryNone,
		},
		History: HistoryConfig{
			MaxEntries: 1000,
		},
	}
}

// Parse decodes TOML data over the defaults, so a partial file only
// overrides the keys it names.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a TOML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFrom reads and parses TOML configuration from a reader.
func LoadFrom(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("config: read: %w", err)
	}
	return Parse(data)
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.Rope.LeafMin <= 0 {
		return fmt.Errorf("config: leaf_min must be positive, got %d", c.Rope.LeafMin)
	}
	if c.Rope.LeafMax < c.Rope.LeafMin {
		return fmt.Errorf("config: leaf_max %d below leaf_min %d", c.Rope.LeafMax, c.Rope.LeafMin)
	}
	switch c.Rope.Balance {
	case BalanceIncremental, BalanceRebuild:
	default:
		return fmt.Errorf("config: unknown balance strategy %q", c.Rope.Balance)
	}
	switch c.Rope.Boundary {
	case BoundaryNone, BoundaryUTF8, BoundaryGraphemes:
	default:
		return fmt.Errorf("config: unknown boundary policy %q", c.Rope.Boundary)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("config: max_entries must not be negative, got %d", c.History.MaxEntries)
	}
	return nil
}

// RopePolicy converts the configuration into a rope policy.
func (c Config) RopePolicy() rope.Policy {
	pol := rope.Policy{
		LeafMin: c.Rope.LeafMin,
		LeafMax: c.Rope.LeafMax,
	}
	if c.Rope.Balance == BalanceRebuild {
		pol.Strategy = rope.BalanceOnRebuild
	}
	switch c.Rope.Boundary {
	case BoundaryUTF8:
		pol.Boundary = rope.SnapUTF8
	case BoundaryGraphemes:
		pol.Boundary = rope.SnapGraphemes
	}
	return pol
}

// RopeOptions converts the configuration into rope construction
// options.
func (c Config) RopeOptions() []rope.Option {
	opts := []rope.Option{
		rope.WithLeafBounds(c.Rope.LeafMin, c.Rope.LeafMax),
	}
	if c.Rope.Balance == BalanceRebuild {
		opts = append(opts, rope.WithStrategy(rope.BalanceOnRebuild))
	}
	switch c.Rope.Boundary {
	case BoundaryUTF8:
		opts = append(opts, rope.WithBoundary(rope.SnapUTF8))
	case BoundaryGraphemes:
		opts = append(opts, rope.WithBoundary(rope.SnapGraphemes))
	}
	return opts
}
