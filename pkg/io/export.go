package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tilelay/pkg/layout"
	"github.com/matzehuels/tilelay/pkg/pattern"
)

// Version is the document format version written by this package.
const Version = 1

// Document is a saved layout.
type Document struct {
	Version   int            `json:"version"`
	ID        string         `json:"id"`
	Wall      string         `json:"wall,omitempty"`
	Params    pattern.Params `json:"params"`
	CreatedAt time.Time      `json:"created_at"`
	Result    *layout.Result `json:"result"`
}

// NewDocument wraps res in a document with a fresh ID.
func NewDocument(wall string, params pattern.Params, res *layout.Result) *Document {
	return &Document{
		Version:   Version,
		ID:        uuid.NewString(),
		Wall:      wall,
		Params:    params,
		CreatedAt: time.Now().UTC(),
		Result:    res,
	}
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
