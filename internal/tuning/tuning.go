// Package tuning loads generation knobs from a YAML file.
package tuning

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"level-layout/internal/generate"
)

// Tuning mirrors the adjustable fields of generate.Config. Zero values leave
// the config's own value in place.
type Tuning struct {
	GridSize  int `yaml:"grid_size"`
	OffsetMin int `yaml:"offset_min"`
	OffsetMax int `yaml:"offset_max"`

	MaxStraightLength   int     `yaml:"max_straight_length"`
	StraightLinePenalty float64 `yaml:"straight_line_penalty"`

	HallwayWorkers int `yaml:"hallway_workers"`
}

// Default returns the values DefaultConfig uses.
func Default() Tuning {
	cfg := generate.DefaultConfig("")
	return Tuning{
		GridSize:            cfg.GridSize,
		OffsetMin:           cfg.MinOffset,
		OffsetMax:           cfg.MaxOffset,
		MaxStraightLength:   cfg.Hallways.MaxStraightLength,
		StraightLinePenalty: cfg.Hallways.StraightLinePenalty,
		HallwayWorkers:      cfg.Workers,
	}
}

// Load reads a tuning file. Keys missing from the file stay zero.
func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Apply copies every non-zero field onto cfg.
func (t Tuning) Apply(cfg *generate.Config) {
	if t.GridSize != 0 {
		cfg.GridSize = t.GridSize
	}
	if t.OffsetMin != 0 {
		cfg.MinOffset = t.OffsetMin
	}
	if t.OffsetMax != 0 {
		cfg.MaxOffset = t.OffsetMax
	}
	if t.MaxStraightLength != 0 {
		cfg.Hallways.MaxStraightLength = t.MaxStraightLength
	}
	if t.StraightLinePenalty != 0 {
		cfg.Hallways.StraightLinePenalty = t.StraightLinePenalty
	}
	if t.HallwayWorkers != 0 {
		cfg.Workers = t.HallwayWorkers
	}
}

// Digest identifies the settings that affect a layout's content. Worker
// count is left out since it never changes the output.
func (t Tuning) Digest() string {
	t.HallwayWorkers = 0
	b, _ := yaml.Marshal(t)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
