package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/zxdraw/pkg/errors"
	"github.com/matzehuels/zxdraw/pkg/gates"
	"github.com/matzehuels/zxdraw/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	gate     gates.Gate
	formats  string  // comma-separated; empty means the configured formats
	output   string  // base path without extension
	scale    float64 // layout unit scale for tikz and dot
	detailed bool    // vertex handles in DOT labels
	refresh  bool    // ignore cached results
	noCache  bool    // do not read or write the cache
}

// buildCommand creates the build command, which renders one gate.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <kind>",
		Short: "Build a gate diagram and write it in one or more formats",
		Long: `Build a ZX diagram for a single gate and write one file per format.

Kinds: ` + strings.Join(kindNames(), ", ") + `

Examples:
  zxdraw build cx --control 0 --target 1 -f tikz,svg
  zxdraw build clifford --color x --sign minus --qubit 2
  zxdraw build gadget --pauli ZIXY --phase 1/4 -o gadgets/zixy`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := gates.ParseKind(args[0])
			if err != nil {
				return err
			}
			opts.gate.Kind = kind
			return c.runBuild(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.gate.Color, "color", "", "spider color: z (default), x or y")
	f.StringVar(&opts.gate.Sign, "sign", "", "Clifford half-turn: plus (default) or minus")
	f.IntVar(&opts.gate.Qubit, "qubit", 0, "target wire of a single-qubit gate")
	f.IntVar(&opts.gate.Wires, "wires", 0, "wire count of an identity diagram")
	f.IntVar(&opts.gate.Control, "control", 0, "control wire of cx/cz")
	f.IntVar(&opts.gate.Target, "target", 0, "target wire of cx/cz")
	f.StringVar(&opts.gate.Pauli, "pauli", "", "Pauli string of a gadget, e.g. ZIXY")
	f.StringVar(&opts.gate.Phase, "phase", "", "phase as a fraction of π, e.g. 1/2 or 3/4")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats(), ", ")+" (comma-separated)")
	f.StringVarP(&opts.output, "output", "o", "", "output base path (default derived from the gate)")
	f.Float64Var(&opts.scale, "scale", 0, "scale per layout unit (tikz, dot, svg, png)")
	f.BoolVar(&opts.detailed, "detailed", false, "label vertices with their handles (dot, svg, png)")
	f.BoolVar(&opts.refresh, "refresh", false, "rebuild even if cached")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the cache")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, opts *buildOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := printer{w: cmd.OutOrStdout()}

	formats := parseFormats(opts.formats, c.config.Output.Formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	runner, err := c.newRunner(cmd, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, pipeline.Options{
		Gate:     opts.gate,
		Refresh:  opts.refresh,
		Formats:  formats,
		Scale:    opts.scale,
		Detailed: opts.detailed,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %s", opts.gate))

	base := opts.output
	if base == "" {
		base = filepath.Join(c.config.Output.Dir, defaultName(opts.gate))
	}
	base = stripFormatExt(base)

	out.success("%s", StyleTitle.Render(opts.gate.String()))
	out.stats(res.Stats, res.CacheInfo.BuildHit)
	for _, format := range res.Formats() {
		path, err := writeArtifact(base, format, res.Artifacts[format])
		if err != nil {
			return err
		}
		out.file(path, len(res.Artifacts[format]))
	}
	return nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// parseFormats splits a comma-separated format list, falling back to def.
func parseFormats(s string, def []string) []string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, strings.ToLower(f))
		}
	}
	return formats
}

var nameSep = regexp.MustCompile(`[^A-Za-z0-9]+`)

// defaultName derives a file name from a gate, e.g. "cx-0-1".
func defaultName(g gates.Gate) string {
	name := strings.Trim(nameSep.ReplaceAllString(g.String(), "-"), "-")
	if name == "" {
		return string(g.Kind)
	}
	return name
}

// stripFormatExt removes a known output extension so "-o cx.svg" and
// "-o cx" name the same base.
func stripFormatExt(path string) string {
	ext := filepath.Ext(path)
	for _, f := range pipeline.Formats() {
		if strings.EqualFold(ext, pipeline.Extension(f)) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}

// writeArtifact writes data to base plus the format's extension, creating
// parent directories as needed.
func writeArtifact(base, format string, data []byte) (string, error) {
	path := base + pipeline.Extension(format)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return path, nil
}

func kindNames() []string {
	var names []string
	for _, k := range gates.Kinds() {
		names = append(names, string(k))
	}
	return names
}
