// Package ebitenrun renders a sprig View with Ebitengine and feeds it
// mouse, touch, wheel and window-size input.
package ebitenrun

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/sprig"
	"github.com/phanxgames/sprig/svgtree"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Background is the clear color. The zero value is opaque black.
	Background color.RGBA
	ShowFPS    bool
}

// Game is an ebiten.Game that drives a View.
type Game struct {
	view  *sprig.View
	scene Scene
	cfg   RunConfig

	input   *sampler
	size    sprig.Size
	frame   sprig.Frame
	scratch []ebiten.Vertex
	white   *ebiten.Image
}

// NewGame loads doc into view and prepares its meshes.
func NewGame(view *sprig.View, doc *svgtree.Document, cfg RunConfig) (*Game, error) {
	if err := view.Load(doc.Root); err != nil {
		return nil, fmt.Errorf("ebitenrun: load: %w", err)
	}
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	g := &Game{
		view:  view,
		scene: BuildScene(doc, view.Layouts()),
		cfg:   cfg,
		input: newSampler(),
		white: white,
	}
	sprig.Logger().Info("scene built", "meshes", len(g.scene.Meshes), "labels", len(g.scene.Labels))
	return g, nil
}

// Frame returns the output of the last Update.
func (g *Game) Frame() sprig.Frame {
	return g.frame
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.frame = g.view.Tick(g.input.poll(g.size))
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background())

	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	for i := range g.scene.Meshes {
		m := &g.scene.Meshes[i]
		mat, ok := slotToPixels(g.frame, m.Slot, g.size)
		if !ok {
			continue
		}
		if cap(g.scratch) < len(m.Vertices) {
			g.scratch = make([]ebiten.Vertex, len(m.Vertices))
		}
		verts := g.scratch[:len(m.Vertices)]
		transformVertices(m.Vertices, verts, mat)
		screen.DrawTriangles(verts, m.Indices, g.white, &op)
	}

	for _, l := range g.scene.Labels {
		mat, ok := slotToPixels(g.frame, l.Slot, g.size)
		if !ok {
			continue
		}
		text := labelText(l, g.frame.Texts)
		if text == "" {
			continue
		}
		x, y := mat.TransformPoint(float32(l.At.X), float32(l.At.Y))
		ebitenutil.DebugPrintAt(screen, text, int(x), int(y))
	}

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS()), 4, 4)
	}
}

// Layout implements ebiten.Game. The screen always matches the window so
// constraints see real resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.size = sprig.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

func (g *Game) background() color.RGBA {
	if g.cfg.Background == (color.RGBA{}) {
		return color.RGBA{A: 0xff}
	}
	return g.cfg.Background
}

// labelText returns the bound text of a label, falling back to the text
// authored in the document.
func labelText(l Label, texts map[string]string) string {
	if l.Name != "" {
		if t, ok := texts[l.Name]; ok {
			return t
		}
	}
	return l.Text
}

// Run opens a window and drives view until the window is closed.
func Run(view *sprig.View, doc *svgtree.Document, cfg RunConfig) error {
	g, err := NewGame(view, doc, cfg)
	if err != nil {
		return err
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
