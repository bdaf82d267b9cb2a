// Package export writes layouts as zstd-compressed JSON. A stream holds one
// header line naming the format, then the layout document.
package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"level-layout/internal/generate"
)

// Format and Version identify the stream in its header line.
const (
	Format  = "level-layout"
	Version = 1
)

// ErrFormat is returned when a stream's header is missing or names another
// format or version.
var ErrFormat = errors.New("export: not a level-layout stream")

// Header is the first line of a stream, readable without decoding the body.
type Header struct {
	Format   string `json:"format"`
	Version  int    `json:"version"`
	Seed     string `json:"seed"`
	Rooms    int    `json:"rooms"`
	Hallways int    `json:"hallways"`
}

// Encode compresses layout onto w.
func Encode(w io.Writer, layout *generate.Layout) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, _ := json.Marshal(Header{
		Format:   Format,
		Version:  Version,
		Seed:     layout.Seed,
		Rooms:    len(layout.Rooms),
		Hallways: len(layout.Hallways),
	})
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if err := json.NewEncoder(bw).Encode(layout); err != nil {
		enc.Close()
		return fmt.Errorf("export: encode layout: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Decode reads a stream written by Encode.
func Decode(r io.Reader) (*generate.Layout, Header, error) {
	var hdr Header
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, hdr, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, hdr, fmt.Errorf("%w: read header: %w", ErrFormat, err)
	}
	if err := json.Unmarshal(line, &hdr); err != nil || hdr.Format != Format {
		return nil, hdr, ErrFormat
	}
	if hdr.Version != Version {
		return nil, hdr, fmt.Errorf("%w: version %d", ErrFormat, hdr.Version)
	}

	var layout generate.Layout
	if err := json.NewDecoder(br).Decode(&layout); err != nil {
		return nil, hdr, fmt.Errorf("export: decode layout: %w", err)
	}
	return &layout, hdr, nil
}

// Write stores layout at path, creating parent directories as needed.
func Write(path string, layout *generate.Layout) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Encode(f, layout); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read loads a layout written by Write.
func Read(path string) (*generate.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	layout, _, err := Decode(f)
	return layout, err
}
