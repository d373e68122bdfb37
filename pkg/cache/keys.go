package cache

import "strings"

// Keyer generates cache keys.
type Keyer interface {
	// DiagramKey identifies the diagram built from a gate description.
	DiagramKey(gate string) string
	// ArtifactKey identifies one rendering of a diagram.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change artifact bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer is the standard key layout:
//
//	diagram:<sha256(gate)>
//	artifact:<diagram hash>:<format>[:<sha256(options)>]
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DiagramKey returns diagram:<sha256(gate)>.
func (DefaultKeyer) DiagramKey(gate string) string {
	return "diagram:" + Hash([]byte(gate))
}

// ArtifactKey returns artifact:<hash>:<format>, followed by an options hash
// when any option other than the format is set.
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	prefix := "artifact:" + diagramHash + ":" + strings.ToLower(opts.Format)
	if opts.Scale == 0 && !opts.Detailed {
		return prefix
	}
	return hashKey(prefix, opts.Scale, opts.Detailed)
}
