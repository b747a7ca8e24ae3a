package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/phanxgames/sprig"
	"github.com/phanxgames/sprig/svgtree"
)

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	width  float64 // viewport width in pixels
	height float64 // viewport height in pixels
}

func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{width: defaultWidth, height: defaultHeight}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Resolve an annotated SVG and print its layouts and clickables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], opts)
		},
	}
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "viewport width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "viewport height in pixels")
	return cmd
}

func (c *CLI) runInspect(path string, opts inspectOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	doc, err := svgtree.ParseFile(path)
	if err != nil {
		return err
	}
	lm, err := resolveDocument(doc, cfg, opts.width, opts.height)
	if err != nil {
		return err
	}
	writeInspect(c.out, path, lm)
	return nil
}

// resolveDocument loads doc into a fresh registry and resolves it against a
// width x height viewport.
func resolveDocument(doc *svgtree.Document, cfg sprig.Config, width, height float64) (*sprig.LayoutMachine, error) {
	root, err := sprig.ParseConstraint(cfg.RootLayout)
	if err != nil {
		return nil, err
	}
	lm := sprig.NewLayoutMachine(root)
	if err := lm.Load(doc.Root); err != nil {
		return nil, err
	}
	lm.Resize(width, height)
	return lm, nil
}

func writeInspect(w io.Writer, name string, lm *sprig.LayoutMachine) {
	d := lm.Display()
	fmt.Fprintln(w, styleTitle.Render(name)+" "+styleDim.Render(fmt.Sprintf("%.0fx%.0f", d.Width, d.Height)))
	fmt.Fprintln(w, layoutTable(lm.Layouts()).Render())
	fmt.Fprintln(w, clickableTable(lm.Clickables()).Render())
}

func layoutTable(layouts []sprig.Layout) *table.Table {
	rows := make([][]string, 0, len(layouts))
	for _, l := range layouts {
		parent := l.ParentID
		if parent == "" {
			parent = "-"
		}
		status := "ok"
		placement := "-"
		if l.Resolved() {
			r := l.Placement().Rect
			placement = fmt.Sprintf("%.0f,%.0f %.0fx%.0f", r.X, r.Y, r.Width, r.Height)
		} else {
			status = "skipped"
		}
		rows = append(rows, []string{strconv.Itoa(l.Slot()), l.ID, parent, l.Constraint.String(), placement, status})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Slot", "Layout", "Parent", "Constraint", "Placement", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return styleHeader
			case col == 5 && rows[row][5] == "ok":
				return styleOK
			case col == 5:
				return styleSkipped
			}
			return lipgloss.NewStyle()
		})
}

func clickableTable(clickables []sprig.Clickable) *table.Table {
	rows := make([][]string, 0, len(clickables))
	for i, c := range clickables {
		source := "layout"
		if c.Source.Kind == sprig.SourceBBox {
			source = "bbox"
		}
		owner := c.Source.Layout
		if owner == "" {
			owner = "-"
		}
		rows = append(rows, []string{strconv.Itoa(i), c.ID, source, owner})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Clickable", "Source", "Layout").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			return lipgloss.NewStyle()
		})
}
