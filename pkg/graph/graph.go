package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/zxdraw/pkg/zx"
)

// =============================================================================
// Diagram Serialization API
// =============================================================================

// MarshalDiagram converts a zx.Graph to indented JSON bytes.
// Output is deterministic: equal graphs give equal bytes.
func MarshalDiagram(g *zx.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDiagramTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDiagramFile writes a zx.Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteDiagramFile(g *zx.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDiagramTo(g, f)
}

// WriteDiagram writes a zx.Graph as JSON to an io.Writer.
// Use MarshalDiagram for in-memory serialization or WriteDiagramFile for files.
func WriteDiagram(g *zx.Graph, w io.Writer) error {
	return writeDiagramTo(g, w)
}

// ReadDiagramFile reads a JSON file and returns the decoded graph.
func ReadDiagramFile(path string) (*zx.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readDiagramFrom(f)
}

// ReadDiagram decodes a JSON diagram from an io.Reader into a zx.Graph.
// Use ReadDiagramFile for files or pass bytes.NewReader for in-memory data.
func ReadDiagram(r io.Reader) (*zx.Graph, error) {
	return readDiagramFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeDiagramTo(g *zx.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDiagramFrom(r io.Reader) (*zx.Graph, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(d)
}
