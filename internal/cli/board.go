package cli

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sprig/ebitenrun"
	"github.com/phanxgames/sprig/internal/boardgame"
	"github.com/phanxgames/sprig/svgtree"
)

// boardOpts holds the command-line flags for the board command.
type boardOpts struct {
	runOpts
	cells   int
	players int
	svgOut  string // write the board SVG here instead of playing
}

func (c *CLI) boardCommand() *cobra.Command {
	opts := boardOpts{
		runOpts: runOpts{width: defaultWidth, height: defaultHeight},
		cells:   boardgame.DefaultCells,
		players: boardgame.DefaultPlayers,
	}

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Play the demo board game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoard(opts)
		},
	}
	cmd.Flags().IntVar(&opts.cells, "cells", opts.cells, "cells around the board (multiple of 4)")
	cmd.Flags().IntVar(&opts.players, "players", opts.players, "number of players (2-4)")
	cmd.Flags().StringVar(&opts.svgOut, "svg", "", "write the board SVG to this file and exit ('-' for stdout)")
	cmd.Flags().StringVar(&opts.script, "script", "", "JSON input script to replay")
	cmd.Flags().BoolVar(&opts.fps, "fps", false, "show the FPS counter")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log per-frame timing statistics")
	return cmd
}

func (c *CLI) runBoard(opts boardOpts) error {
	board, err := boardgame.NewBoard(opts.cells, opts.players)
	if err != nil {
		return err
	}
	svg := board.SVG()

	switch opts.svgOut {
	case "":
	case "-":
		_, err := c.out.Write(svg)
		return err
	default:
		if err := os.WriteFile(opts.svgOut, svg, 0o644); err != nil {
			return err
		}
		c.Logger.Info("board written", "path", opts.svgOut)
		return nil
	}

	doc, err := svgtree.Parse(bytes.NewReader(svg))
	if err != nil {
		return err
	}
	view, err := c.newView(opts.runOpts)
	if err != nil {
		return err
	}
	game := boardgame.NewGame(board, nil)
	view.SetHandler(game)
	view.Apply(game.Start())

	return ebitenrun.Run(view, doc, ebitenrun.RunConfig{
		Title:   "sprig - board",
		Width:   opts.width,
		Height:  opts.height,
		ShowFPS: opts.fps,
	})
}
