// Package io provides JSON import and export for computed layouts.
//
// # Overview
//
// A layout document wraps a [layout.Result] with the inputs that produced
// it, so a layout can be saved by the CLI, served by the API and reloaded
// later without recomputing:
//
//	{
//	  "version": 1,
//	  "id": "6f1c...",
//	  "wall": "east",
//	  "params": {"unitLength": 50, "groutWidth": 2, "scale": 0.2},
//	  "created_at": "2025-01-01T00:00:00Z",
//	  "result": {
//	    "pattern": "Square Grid Pattern",
//	    "tiles": [{"anchor": [0, 0], "class": "inside", "tiles": [...]}],
//	    "tileCounts": [{"signature": "...", "count": 96, ...}],
//	    "area": {"tileAreaCovered": 0.38, ...},
//	    "stats": {...}
//	  }
//	}
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader. Both reject unknown versions and documents whose
// tile groups break the result invariants (group length, increasing IDs).
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write
// to any io.Writer. Output is indented for diffing.
//
// [layout.Result]: github.com/matzehuels/tilelay/pkg/layout.Result
package io
