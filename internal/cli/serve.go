package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/zxdraw/internal/server"
	"github.com/matzehuels/zxdraw/pkg/observability"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram API over HTTP",
		Long: `Serve the diagram API over HTTP until interrupted.

  GET  /healthz
  GET  /metrics
  GET  /v1/gates
  POST /v1/diagrams?format=svg   (body: {"kind": "cx", "control": 0, "target": 1})`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Server.Addr
			}

			runner, err := c.newRunner(cmd, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			var metrics *server.Metrics
			if !noMetrics {
				metrics = server.NewMetrics()
				metrics.Install()
				defer observability.Reset()
			}

			return server.New(runner, metrics, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}
