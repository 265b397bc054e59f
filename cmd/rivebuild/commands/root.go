// Package commands implements the CLI commands for rivebuild.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/rivebuild/internal/app"
	"go.trai.ch/rivebuild/internal/build"
)

// CLI represents the command line interface for rivebuild.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rivebuild",
		Short:         "Build the Rive runtime and copy its libraries into the Unreal plugin",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file, relative to the plugin root (default rivebuild.yaml)")
	rootCmd.PersistentFlags().StringP("plugin-root", "C", ".", "Root of the Unreal plugin receiving the artifacts")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newSyncIncludesCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

// options reads the persistent flags and the optional runtime argument.
func options(cmd *cobra.Command, args []string) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	pluginRoot, _ := cmd.Flags().GetString("plugin-root")
	opts := app.Options{PluginRoot: pluginRoot, ConfigPath: configPath}
	if len(args) > 0 {
		opts.Runtime = args[0]
	}
	return opts
}
