package ebitenrun

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sprig"
	"github.com/phanxgames/sprig/svgtree"
)

// maxMeshVertices is the largest outline a single uint16-indexed fan can
// address.
const maxMeshVertices = 1 << 16

// Mesh is a filled outline in root SVG units bound to a transform slot.
type Mesh struct {
	Name     string
	Slot     int
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Label is a text element bound to a transform slot. Its text is replaced
// by the view's bound text for Name when one exists.
type Label struct {
	Name string
	Slot int
	// At is the top-left corner of the text box in root SVG units.
	At   sprig.Vec2
	Text string
}

// Scene is the drawable content of a document.
type Scene struct {
	Meshes []Mesh
	Labels []Label
}

// BuildScene collects every filled closed outline and every text element of
// doc. Each item uses the transform slot of its nearest named ancestor as
// registered in lm, so doc must already be loaded.
func BuildScene(doc *svgtree.Document, lm *sprig.LayoutMachine) Scene {
	var sc Scene
	if doc == nil || doc.Root == nil {
		return sc
	}
	collect(doc.Root, 0, lm, &sc)
	return sc
}

func collect(e *svgtree.Element, slot int, lm *sprig.LayoutMachine, sc *Scene) {
	if name := e.Name(); name != "" {
		if s, ok := lm.TransformID(name); ok {
			slot = s
		}
	}

	switch {
	case e.Tag == "text":
		if e.Text != "" || e.Name() != "" {
			b := e.BBox()
			sc.Labels = append(sc.Labels, Label{
				Name: e.Name(),
				Slot: slot,
				At:   sprig.Vec2{X: float64(b.X), Y: float64(b.Y)},
				Text: e.Text,
			})
		}
	case e.HasFill && e.Closed:
		verts, inds := buildPolygonFan(e.Outline, e.Fill)
		if verts != nil {
			sc.Meshes = append(sc.Meshes, Mesh{Name: e.Name(), Slot: slot, Vertices: verts, Indices: inds})
		}
	}

	for _, c := range e.Elements() {
		collect(c, slot, lm, sc)
	}
}

// buildPolygonFan generates vertices and indices for a fan-triangulated
// polygon with a solid premultiplied fill. N vertices, 3*(N-2) indices.
func buildPolygonFan(points []sprig.Vec2, fill color.RGBA) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 || n > maxMeshVertices {
		return nil, nil
	}

	r := float32(fill.R) / 0xff
	g := float32(fill.G) / 0xff
	b := float32(fill.B) / 0xff
	a := float32(fill.A) / 0xff

	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)
	for i, p := range points {
		verts[i] = ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r * a,
			ColorG: g * a,
			ColorB: b * a,
			ColorA: a,
		}
	}
	for i := range n - 2 {
		inds[i*3] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}
	return verts, inds
}

// transformVertices applies m to the positions of src, writing into dst.
// dst must be at least len(src) in length.
func transformVertices(src, dst []ebiten.Vertex, m sprig.Mat4) {
	for i := range src {
		s := src[i]
		s.DstX, s.DstY = m.TransformPoint(s.DstX, s.DstY)
		dst[i] = s
	}
}

// PixelsFromDevice maps device space back to viewport pixels. It is the
// inverse of sprig.DeviceFromPixels.
func PixelsFromDevice(display sprig.Size) sprig.Mat4 {
	return sprig.Scale(float32(display.Width/2), float32(display.Height/2), 1).
		Mul(sprig.Translate(1, 1, 0))
}

// slotToPixels composes the full root-unit to pixel transform of a slot.
func slotToPixels(frame sprig.Frame, slot int, display sprig.Size) (sprig.Mat4, bool) {
	if slot < 0 || slot >= len(frame.Matrices) {
		return sprig.Mat4{}, false
	}
	m := frame.Matrices[slot]
	if m.IsZero() {
		return sprig.Mat4{}, false
	}
	return PixelsFromDevice(display).Mul(frame.Global).Mul(m), true
}
