package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"level-layout/internal/generate"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
grid_size: 512
offset_min: 12
offset_max: 24
max_straight_length: 3
straight_line_penalty: 1.5
hallway_workers: 4
`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Tuning{
		GridSize:            512,
		OffsetMin:           12,
		OffsetMax:           24,
		MaxStraightLength:   3,
		StraightLinePenalty: 1.5,
		HallwayWorkers:      4,
	}
	if got != want {
		t.Errorf("Load() = %+v; want %+v", got, want)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(writeFile(t, "grid_size: [1, 2")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestApplyKeepsUnsetFields(t *testing.T) {
	cfg := generate.DefaultConfig("seed")
	Tuning{OffsetMax: 40, StraightLinePenalty: 2}.Apply(cfg)

	if cfg.MaxOffset != 40 || cfg.Hallways.StraightLinePenalty != 2 {
		t.Errorf("set fields not applied: %+v", cfg)
	}
	if cfg.MinOffset != generate.DefaultMinOffset || cfg.GridSize != Default().GridSize {
		t.Errorf("unset fields changed: %+v", cfg)
	}
	if cfg.Seed != "seed" {
		t.Errorf("seed = %q; Apply must not touch it", cfg.Seed)
	}
}

func TestDefaultMatchesConfig(t *testing.T) {
	cfg := generate.DefaultConfig("")
	before := *cfg
	Default().Apply(cfg)
	if cfg.GridSize != before.GridSize || cfg.MinOffset != before.MinOffset ||
		cfg.MaxOffset != before.MaxOffset || cfg.Hallways != before.Hallways || cfg.Workers != before.Workers {
		t.Errorf("applying Default() changed the config: %+v -> %+v", before, *cfg)
	}
}

func TestDigestIgnoresWorkers(t *testing.T) {
	a := Default()
	b := Default()
	b.HallwayWorkers = 8
	if a.Digest() != b.Digest() {
		t.Error("worker count should not affect the digest")
	}
	b.MaxStraightLength = 9
	if a.Digest() == b.Digest() {
		t.Error("hallway settings should affect the digest")
	}
}
