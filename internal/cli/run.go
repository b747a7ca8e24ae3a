package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sprig"
	"github.com/phanxgames/sprig/ebitenrun"
	"github.com/phanxgames/sprig/svgtree"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	width, height int
	script        string // JSON input script replayed into the view
	fps           bool
	debug         bool // log per-frame timing
}

func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{width: defaultWidth, height: defaultHeight}

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Open a window rendering an annotated SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFile(args[0], opts)
		},
	}
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "initial window width")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "initial window height")
	cmd.Flags().StringVar(&opts.script, "script", "", "JSON input script to replay")
	cmd.Flags().BoolVar(&opts.fps, "fps", false, "show the FPS counter")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log per-frame timing statistics")
	return cmd
}

func (c *CLI) runFile(path string, opts runOpts) error {
	doc, err := svgtree.ParseFile(path)
	if err != nil {
		return err
	}
	view, err := c.newView(opts)
	if err != nil {
		return err
	}
	return ebitenrun.Run(view, doc, ebitenrun.RunConfig{
		Title:   "sprig - " + path,
		Width:   opts.width,
		Height:  opts.height,
		ShowFPS: opts.fps,
	})
}

// newView builds a View from --config and attaches the optional script.
func (c *CLI) newView(opts runOpts) (*sprig.View, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	view, err := sprig.NewView(cfg)
	if err != nil {
		return nil, err
	}
	view.SetDebugMode(opts.debug)
	if opts.script != "" {
		runner, err := sprig.LoadScriptFile(opts.script)
		if err != nil {
			return nil, fmt.Errorf("script: %w", err)
		}
		view.SetScript(runner)
	}
	return view, nil
}
