package config

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/gates"
	"github.com/matzehuels/zxdraw/pkg/pipeline"
)

// Manifest is a batch of diagrams to build:
//
//	formats = ["tikz"]
//
//	[[diagram]]
//	name = "cnot"
//	kind = "cx"
//	control = 0
//	target = 1
//
//	[[diagram]]
//	name = "zxy-gadget"
//	kind = "gadget"
//	pauli = "ZXY"
//	phase = "1/4"
//	formats = ["svg", "json"]
//	dir = "gadgets"
type Manifest struct {
	Formats  []string `toml:"formats"`
	Diagrams []Entry  `toml:"diagram"`
}

// Entry is one diagram in a manifest. Formats falls back to the manifest's
// formats; Dir is a relative subdirectory of the output directory.
type Entry struct {
	Name    string   `toml:"name"`
	Formats []string `toml:"formats"`
	Dir     string   `toml:"dir"`
	gates.Gate
}

// EffectiveFormats returns the entry's formats, or the manifest's.
func (m *Manifest) EffectiveFormats(e Entry) []string {
	if len(e.Formats) > 0 {
		return e.Formats
	}
	return m.Formats
}

// LoadManifest decodes and validates a batch manifest.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load manifest %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks entry names, kinds, formats and directories. Gate
// arguments are checked later by the builders.
func (m *Manifest) Validate() error {
	if len(m.Diagrams) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "manifest has no [[diagram]] entries")
	}
	if err := pipeline.ValidateFormats(m.Formats); err != nil {
		return err
	}
	seen := make(map[string]bool, len(m.Diagrams))
	for i, e := range m.Diagrams {
		if err := errors.ValidateFilename(e.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "diagram %d", i+1)
		}
		if seen[e.Dir+"/"+e.Name] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate diagram name %q", e.Name)
		}
		seen[e.Dir+"/"+e.Name] = true
		if _, err := gates.ParseKind(string(e.Kind)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "diagram %q", e.Name)
		}
		if err := pipeline.ValidateFormats(e.Formats); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "diagram %q", e.Name)
		}
		if e.Dir != "" {
			if err := errors.ValidatePath(e.Dir); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "diagram %q", e.Name)
			}
		}
	}
	return nil
}
