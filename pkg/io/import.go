package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tilelay/pkg/errors"
)

// ReadJSON decodes a layout document from r and checks it.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - The version is not supported
//   - The document has no result
//   - A tile group's length differs from the number of tile slots
//   - Drawn tile IDs are not strictly increasing from 1
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Version != Version {
		return nil, errors.New(errors.ErrCodeUnsupported, "layout document version %d (want %d)", doc.Version, Version)
	}
	if doc.Result == nil {
		return nil, errors.New(errors.ErrCodeMissingInput, "layout document has no result")
	}

	slots := len(doc.Result.TileTypes)
	next := 1
	for i, g := range doc.Result.Tiles {
		if len(g.Tiles) != slots {
			return nil, errors.New(errors.ErrCodeInvalidInput, "group %d has %d tiles, want %d", i, len(g.Tiles), slots)
		}
		for _, t := range g.Tiles {
			if !t.Draw {
				continue
			}
			if t.ID != next {
				return nil, errors.New(errors.ErrCodeInvalidInput, "group %d: tile id %d, want %d", i, t.ID, next)
			}
			next++
		}
	}
	return &doc, nil
}

// ImportJSON reads a layout document from the file at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
