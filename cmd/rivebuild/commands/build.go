package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [runtime-path]",
		Short: "Compile the runtime for the host platforms and sync the plugin",
		Long: "Compile the runtime in release and debug for every platform the host builds " +
			"(mac and ios on macOS, windows and android on Windows), copy the libraries into the " +
			"plugin and finally replace its include and shader trees.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := options(cmd, args)
			opts.Tests, _ = cmd.Flags().GetBool("tests")
			opts.RawShaders, _ = cmd.Flags().GetBool("raw-shaders")
			opts.Platforms, _ = cmd.Flags().GetStringSlice("platform")
			_, err := c.app.Build(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().BoolP("tests", "t", false, "Also build the test targets and copy them into the GM plugin")
	cmd.Flags().BoolP("raw-shaders", "r", false, "Pass --raw_shaders to the build generator")
	cmd.Flags().StringSliceP("platform", "p", nil, "Restrict the build to these platforms")
	return cmd
}

func (c *CLI) newSyncIncludesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-includes [runtime-path]",
		Short: "Replace the plugin include and shader trees without compiling",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.app.SyncIncludes(cmd.Context(), options(cmd, args))
			return err
		},
	}
}

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the synced artifacts are unchanged since the last build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.app.Verify(cmd.Context(), options(cmd, args))
			return err
		},
	}
}
