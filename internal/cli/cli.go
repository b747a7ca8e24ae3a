// Package cli implements the sprig command-line interface.
//
// # Commands
//
//   - inspect: resolve an annotated SVG against a viewport and print its
//     layouts and clickables
//   - run: open a window rendering an annotated SVG
//   - board: play the demo board game, or write its SVG
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The CLI
// logger is installed as the sprig package logger, so layout warnings and
// frame statistics share its output.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sprig"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

const (
	defaultWidth  = 1024
	defaultHeight = 768
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	configPath string
	verbose    bool
}

// New creates a CLI writing logs to w and command output to out.
func New(out, w io.Writer, level log.Level) *CLI {
	l := newLogger(w, level)
	sprig.SetLogger(l)
	return &CLI{Logger: l, out: out}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.verbose = level <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sprig",
		Short:        "Sprig lays out, animates and hit-tests annotated SVG scenes",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML config file")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.boardCommand())
	return root
}

// loadConfig reads --config, or returns the defaults. The config log level
// applies unless --verbose was given.
func (c *CLI) loadConfig() (sprig.Config, error) {
	cfg := sprig.DefaultConfig()
	if c.configPath != "" {
		var err error
		cfg, err = sprig.LoadConfig(c.configPath)
		if err != nil {
			return sprig.Config{}, err
		}
		c.Logger.Debug("config loaded", "path", c.configPath)
	}
	if !c.verbose && c.configPath != "" {
		level, err := cfg.Level()
		if err != nil {
			return sprig.Config{}, err
		}
		c.Logger.SetLevel(level)
	}
	return cfg, nil
}
