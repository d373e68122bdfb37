package cli

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/zxdraw/internal/config"
	"github.com/matzehuels/zxdraw/pkg/pipeline"
)

type batchOpts struct {
	outDir    string
	refresh   bool
	noCache   bool
	keepGoing bool
}

// batchCommand creates the batch command, which builds every diagram in a
// TOML manifest.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch <manifest.toml>",
		Short: "Build every diagram listed in a manifest",
		Long: `Build every [[diagram]] entry of a TOML manifest.

Each entry names a gate like the build command does and is written to
<out>/<dir>/<name>.<ext> for each of its formats.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (default from config, else the manifest's directory)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache")
	cmd.Flags().BoolVarP(&opts.keepGoing, "keep-going", "k", false, "continue after a failed entry")

	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, path string, opts *batchOpts) error {
	ctx := cmd.Context()
	runID := uuid.NewString()
	logger := loggerFromContext(ctx).With("run", runID[:8])
	ctx = withLogger(ctx, logger)
	cmd.SetContext(ctx)
	out := printer{w: cmd.OutOrStdout()}

	m, err := config.LoadManifest(path)
	if err != nil {
		return err
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = c.config.Output.Dir
	}
	if outDir == "" {
		outDir = filepath.Dir(path)
	}

	runner, err := c.newRunner(cmd, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger.Info("starting batch", "manifest", path, "diagrams", len(m.Diagrams), "out", outDir)
	prog := newProgress(logger)

	var rows []batchRow
	failed := 0
	for _, e := range m.Diagrams {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := buildEntry(cmd, runner, m, e, outDir, opts)
		if err != nil {
			failed++
			logger.Error("diagram failed", "name", e.Name, "error", err)
			if !opts.keepGoing {
				return fmt.Errorf("%s: %w", e.Name, err)
			}
			out.failure("%s: %v", e.Name, err)
			continue
		}
		rows = append(rows, row)
	}
	prog.done(fmt.Sprintf("Built %d of %d diagrams", len(rows), len(m.Diagrams)))

	if len(rows) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), statsTable(rows))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d diagrams failed", failed, len(m.Diagrams))
	}
	out.success("Wrote %s diagrams to %s", StyleNumber.Render(fmt.Sprint(len(rows))), outDir)
	return nil
}

func buildEntry(cmd *cobra.Command, runner *pipeline.Runner, m *config.Manifest, e config.Entry, outDir string, opts *batchOpts) (batchRow, error) {
	ctx := cmd.Context()
	formats := m.EffectiveFormats(e)

	res, err := runner.Execute(ctx, pipeline.Options{
		Gate:    e.Gate,
		Refresh: opts.refresh,
		Formats: formats,
		Logger:  loggerFromContext(ctx),
	})
	if err != nil {
		return batchRow{}, err
	}

	base := filepath.Join(outDir, e.Dir, e.Name)
	for _, format := range res.Formats() {
		if _, err := writeArtifact(base, format, res.Artifacts[format]); err != nil {
			return batchRow{}, err
		}
	}
	return batchRow{
		name:   e.Name,
		gate:   e.Gate.String(),
		stats:  res.Stats,
		cached: res.CacheInfo.BuildHit,
	}, nil
}
