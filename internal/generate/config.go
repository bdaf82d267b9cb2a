package generate

import (
	"log/slog"

	"level-layout/internal/gamemap"
	"level-layout/internal/pathfind"
)

// Default placement offsets: a child room's anchor lands this many cells
// away from its parent's anchor along the chosen direction.
const (
	DefaultMinOffset = 10
	DefaultMaxOffset = 30
)

// Config drives one layout generation.
type Config struct {
	// Seed is hashed into the RNG; identical seeds give identical layouts.
	Seed string

	GridSize             int // side of the occupancy grid; 0 selects gamemap.DefaultSize
	MinOffset, MaxOffset int // inclusive parent→child anchor distance

	Hallways pathfind.Options

	// Workers is the number of goroutines routing hallways. Output order does
	// not depend on it.
	Workers int

	Logger *slog.Logger
}

// DefaultConfig returns the standard configuration for seed.
func DefaultConfig(seed string) *Config {
	return &Config{
		Seed:      seed,
		GridSize:  gamemap.DefaultSize,
		MinOffset: DefaultMinOffset,
		MaxOffset: DefaultMaxOffset,
		Hallways:  pathfind.DefaultOptions(),
		Workers:   1,
		Logger:    slog.Default(),
	}
}

// normalized returns a copy of cfg with unset or out-of-range fields
// replaced by defaults. Corrections are silent apart from a debug record.
func (cfg *Config) normalized() *Config {
	if cfg == nil {
		return DefaultConfig("")
	}
	c := *cfg
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.GridSize <= 0 {
		c.GridSize = gamemap.DefaultSize
	}
	if c.MinOffset <= 0 && c.MaxOffset <= 0 {
		c.MinOffset, c.MaxOffset = DefaultMinOffset, DefaultMaxOffset
	}
	if c.MaxOffset < c.MinOffset {
		c.MaxOffset = c.MinOffset
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Hallways == (pathfind.Options{}) {
		c.Hallways = pathfind.DefaultOptions()
	}
	if opts, changed := c.Hallways.Normalize(); changed {
		c.Logger.Debug("hallway options corrected",
			"max_straight_length", opts.MaxStraightLength,
			"straight_line_penalty", opts.StraightLinePenalty)
		c.Hallways = opts
	}
	return &c
}
