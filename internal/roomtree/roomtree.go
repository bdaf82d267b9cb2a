// Package roomtree defines the input to layout generation: a tree of abstract
// rooms, each with a tag, a size and an ordered list of child rooms. Trees
// usually arrive as JSON produced by a document extractor and are validated
// against an embedded JSON Schema before use.
package roomtree

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed roomtree.schema.json
var schemaSource string

var schema = jsonschema.MustCompileString("roomtree.schema.json", schemaSource)

// Room is one node of the input tree.
type Room struct {
	Tag        string `json:"tag"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background,omitempty"`
	Children   []Room `json:"children,omitempty"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid room tree")

// Decode reads one JSON room tree from r, checks it against the schema and
// returns it.
func Decode(r io.Reader) (Room, error) {
	var room Room
	raw, err := io.ReadAll(r)
	if err != nil {
		return room, fmt.Errorf("roomtree: read: %w", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return room, fmt.Errorf("roomtree: parse: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return room, fmt.Errorf("roomtree: %w: %w", ErrInvalid, err)
	}

	if err := json.Unmarshal(raw, &room); err != nil {
		return room, fmt.Errorf("roomtree: decode: %w", err)
	}
	return room, nil
}

// Validate applies the schema's constraints to a tree built in Go.
func (r Room) Validate() error {
	var err error
	r.Walk(func(n Room, depth int) bool {
		if n.Width < 1 || n.Height < 1 {
			err = fmt.Errorf("roomtree: %w: room %q at depth %d has size %dx%d", ErrInvalid, n.Tag, depth, n.Width, n.Height)
		}
		return err == nil
	})
	return err
}

// Walk visits the tree breadth-first, the same order layout generation
// assigns ids in. Returning false from fn stops the walk.
func (r Room) Walk(fn func(n Room, depth int) bool) {
	type item struct {
		room  Room
		depth int
	}
	queue := []item{{r, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !fn(cur.room, cur.depth) {
			return
		}
		for _, c := range cur.room.Children {
			queue = append(queue, item{c, cur.depth + 1})
		}
	}
}

// Count returns the number of rooms in the tree.
func (r Room) Count() int {
	n := 0
	r.Walk(func(Room, int) bool { n++; return true })
	return n
}

// Depth returns the number of levels in the tree; a lone room has depth 1.
func (r Room) Depth() int {
	d := 0
	r.Walk(func(_ Room, depth int) bool {
		d = max(d, depth+1)
		return true
	})
	return d
}

// Digest returns a stable hex identifier for the tree's content.
func (r Room) Digest() string {
	b, _ := json.Marshal(r)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
