// Package cli implements the memezzz command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/memezzz/internal/config"
	"github.com/cristianadrielbraun/memezzz/internal/logging"
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer

	configPath string
	verbose    bool
}

// New creates a CLI that logs to logw and prints command output to out.
func New(logw, out io.Writer) *CLI {
	return &CLI{Logger: logging.New(logw, log.InfoLevel), Out: out}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "memezzz",
		Short:         "memezzz is a meme creator with QR overlays",
		Long:          `memezzz serves a browser meme editor: pick a template, write or generate captions, drag them into place and export a PNG, optionally stamped with a sponsor or tip QR code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a TOML config file")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.templatesCommand())
	return root
}

// loadConfig reads the configuration and applies its log level, raised to
// debug by --verbose.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	level := logging.ParseLevel(cfg.LogLevel)
	if c.verbose {
		level = log.DebugLevel
	}
	c.Logger.SetLevel(level)
	return cfg, nil
}

// Execute runs the CLI with ctx.
func Execute(ctx context.Context, logw, out io.Writer, args []string) error {
	c := New(logw, out)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}
