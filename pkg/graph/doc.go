// Package graph provides the JSON serialization format for ZX diagrams.
//
// This package defines the canonical wire format for zxdraw's diagram data,
// used for JSON files, API responses and cache keys.
//
// # Architecture
//
// The package sits at the serialization boundary between the in-memory
// representation and external formats:
//
//   - [Diagram]: Serialization type (this package)
//   - zx.Graph: Internal diagram representation
//
// Use [FromGraph]/[ToGraph] to convert between them.
//
// # Format
//
//	{
//	  "capacity": 1,
//	  "wires": [{"wire": 0, "input": 0, "output": 1, "state": "occupied"}],
//	  "vertices": [
//	    {"id": 0, "type": "boundary", "pos": {"x": 0, "y": 0}, "category": "boundary"},
//	    {"id": 1, "type": "boundary", "pos": {"x": 2, "y": 0}, "category": "boundary"},
//	    {"id": 2, "type": "z", "phase": "1", "pos": {"x": 1, "y": 0}, "category": "z_phase"}
//	  ],
//	  "edges": [
//	    {"id": 1, "source": 0, "target": 2, "type": "simple", "category": "simple_edge"},
//	    {"id": 2, "source": 2, "target": 1, "type": "simple", "category": "simple_edge"}
//	  ]
//	}
//
// Phases are fractions of π. The state and category fields are derived and
// ignored on import.
//
// Common operations:
//
//	g, _ := graph.ReadDiagramFile("cx.json")   // File → zx.Graph
//	graph.WriteDiagramFile(g, "cx.json")        // zx.Graph → File
//	data, _ := graph.MarshalDiagram(g)          // zx.Graph → []byte
//	d, _ := graph.UnmarshalDiagram(data)        // []byte → Diagram
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
