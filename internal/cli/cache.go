package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/zxdraw/internal/config"
	"github.com/matzehuels/zxdraw/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the diagram and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached diagram and artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := printer{w: cmd.OutOrStdout()}
			store, err := c.openCache(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				out.warning("The %s cache backend cannot be cleared", c.config.Cache.Backend)
				return nil
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			out.success("Cleared %s cached entries", StyleNumber.Render(fmt.Sprint(n)))
			if fc, ok := store.(*cache.FileCache); ok {
				out.detail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := c.config.Cache
			switch cc.Backend {
			case config.BackendRedis:
				fmt.Fprintln(cmd.OutOrStdout(), cc.RedisURL)
				return nil
			case config.BackendNone:
				printer{w: cmd.OutOrStdout()}.info("Caching is disabled")
				return nil
			}
			dir := cc.Dir
			if dir == "" {
				d, err := cache.DefaultDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				dir = d
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
