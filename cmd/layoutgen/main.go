// layoutgen turns a room tree into a level layout. Build:
//
//	go build -o layoutgen ./cmd/layoutgen
//
// Usage:
//
//	./layoutgen -seed https://example.com -tree page.json
//	./layoutgen -seed https://example.com -sample blog -out blog.json.zst
//	./layoutgen -seed x -tree - -tuning tuning.yaml -db layouts.sqlite -v < page.json
//
// The layout is printed as JSON unless -out names a compressed output file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"level-layout/assets"
	"level-layout/internal/export"
	"level-layout/internal/generate"
	"level-layout/internal/roomtree"
	"level-layout/internal/runlog"
	"level-layout/internal/store"
	"level-layout/internal/tuning"
)

type options struct {
	seed       string
	treePath   string
	sample     string
	tuningPath string
	outPath    string
	dbPath     string
	noRunLog   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.seed, "seed", "", "Seed string, usually the page URL")
	flag.StringVar(&opts.treePath, "tree", "", "Room tree JSON file (- for stdin)")
	flag.StringVar(&opts.sample, "sample", "", "Built-in room tree: "+strings.Join(assets.SampleNames(), ", "))
	flag.StringVar(&opts.tuningPath, "tuning", "", "YAML tuning file")
	flag.StringVar(&opts.outPath, "out", "", "Write a zstd-compressed layout here instead of JSON on stdout")
	flag.StringVar(&opts.dbPath, "db", "", "SQLite layout archive to read from and add to")
	flag.BoolVar(&opts.noRunLog, "no-runlog", false, "Do not append to the local generation history")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(context.Background(), opts, os.Stdin, os.Stdout, logger); err != nil {
		log.Fatalf("layoutgen: %v", err)
	}
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	tree, err := loadTree(opts, stdin)
	if err != nil {
		return err
	}

	tun := tuning.Default()
	if opts.tuningPath != "" {
		if tun, err = tuning.Load(opts.tuningPath); err != nil {
			return err
		}
	}
	cfg := generate.DefaultConfig(opts.seed)
	cfg.Logger = logger
	tun.Apply(cfg)

	key := store.Key{Seed: opts.seed, TreeDigest: tree.Digest(), TuningHash: tun.Digest()}
	var archive *store.Store
	if opts.dbPath != "" {
		if archive, err = store.Open(opts.dbPath); err != nil {
			return err
		}
		defer archive.Close()
	}

	start := time.Now()
	layout, cached, err := generateOrLoad(ctx, archive, key, tree, cfg)
	if !opts.noRunLog {
		e := runlog.NewEntry(opts.seed, key.TreeDigest, layout, time.Since(start), err)
		e.Cached = cached
		runlog.Save(e, logger)
	}
	if err != nil {
		return err
	}
	logger.Info("layout ready",
		"seed", opts.seed,
		"rooms", len(layout.Rooms),
		"hallways", len(layout.Hallways),
		"unrouted", len(layout.Unrouted),
		"cached", cached)

	if opts.outPath != "" {
		return export.Write(opts.outPath, layout)
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(layout)
}

func loadTree(opts options, stdin io.Reader) (roomtree.Room, error) {
	switch {
	case opts.treePath != "" && opts.sample != "":
		return roomtree.Room{}, errors.New("-tree and -sample are mutually exclusive")
	case opts.sample != "":
		tree, ok := assets.Samples[opts.sample]
		if !ok {
			return roomtree.Room{}, fmt.Errorf("unknown sample %q (have %s)", opts.sample, strings.Join(assets.SampleNames(), ", "))
		}
		return tree, nil
	case opts.treePath == "-":
		return roomtree.Decode(stdin)
	case opts.treePath != "":
		f, err := os.Open(opts.treePath)
		if err != nil {
			return roomtree.Room{}, err
		}
		defer f.Close()
		return roomtree.Decode(f)
	default:
		return roomtree.Room{}, errors.New("one of -tree or -sample is required")
	}
}

// generateOrLoad serves key from archive when present, otherwise generates
// and archives the result. A nil archive always generates.
func generateOrLoad(ctx context.Context, archive *store.Store, key store.Key, tree roomtree.Room, cfg *generate.Config) (*generate.Layout, bool, error) {
	if archive != nil {
		layout, found, err := archive.Get(ctx, key)
		if err != nil {
			return nil, false, err
		}
		if found {
			return layout, true, nil
		}
	}
	layout, err := generate.Generate(ctx, tree, cfg)
	if err != nil {
		return nil, false, err
	}
	if archive != nil {
		if err := archive.Put(ctx, key, layout); err != nil {
			return nil, false, err
		}
	}
	return layout, false, nil
}
