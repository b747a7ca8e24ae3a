// Package boardgame is a small board game built on sprig: players take
// turns rolling a die and sliding their avatar around a ring of cells.
package boardgame

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/phanxgames/sprig"
)

// Element ids of the generated board.
const (
	BoardID = "board"
	HUDID   = "hud"
	DiceID  = "dice"
	PipsID  = "pips"
	TurnID  = "turn"
)

// Default board dimensions, in SVG units.
const (
	DefaultCells   = 16
	DefaultPlayers = 2
	cellSize       = 80
	hudWidth       = 220
	hudMargin      = 10
	diceSize       = 64
	diceMargin     = 16
	avatarSize     = 18
	maxPlayers     = 4
)

// Cell values: landing on a tax cell costs, every other cell pays.
const (
	startBonus = 200
	cellPay    = 50
	cellTax    = -250
	startMoney = 1500
)

var (
	ErrBoardSize = errors.New("boardgame: cells must be a positive multiple of 4")
	ErrPlayers   = errors.New("boardgame: players must be between 2 and 4")
)

var avatarColors = [maxPlayers]string{"#e4572e", "#29335c", "#f3a712", "#669bbc"}

// Board is the geometry of a square ring of cells.
type Board struct {
	cells   int
	players int
	side    int
}

// NewBoard creates a board with cells cells around its edge and seats for
// players players.
func NewBoard(cells, players int) (*Board, error) {
	if cells <= 0 || cells%4 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrBoardSize, cells)
	}
	if players < 2 || players > maxPlayers {
		return nil, fmt.Errorf("%w: %d", ErrPlayers, players)
	}
	return &Board{cells: cells, players: players, side: cells / 4}, nil
}

// Cells returns the number of cells.
func (b *Board) Cells() int { return b.cells }

// Players returns the number of seats.
func (b *Board) Players() int { return b.players }

// AvatarID returns the element id of player's avatar.
func AvatarID(player int) string { return fmt.Sprintf("avatar%d", player) }

// DollarsID returns the element id of player's money text.
func DollarsID(player int) string { return fmt.Sprintf("dollars%d", player) }

// CellID returns the element id of cell i.
func CellID(i int) string { return fmt.Sprintf("cell%d", i) }

// CellValue returns the money paid out when landing on cell i.
func (b *Board) CellValue(i int) int {
	switch {
	case i == 0:
		return 0
	case i%4 == 2:
		return cellTax
	}
	return cellPay
}

// CellOrigin returns the top-left corner of cell i. Cells run clockwise
// from the top-left corner of the board.
func (b *Board) CellOrigin(i int) sprig.Vec2 {
	i = ((i % b.cells) + b.cells) % b.cells
	k := b.side
	var col, row int
	switch {
	case i < k:
		col, row = i, 0
	case i < 2*k:
		col, row = k, i-k
	case i < 3*k:
		col, row = k-(i-2*k), k
	default:
		col, row = 0, k-(i-3*k)
	}
	return sprig.Vec2{X: float64(col * cellSize), Y: float64(row * cellSize)}
}

// boardExtent is the width and height of the board square.
func (b *Board) boardExtent() float64 {
	return float64((b.side + 1) * cellSize)
}

// avatarOrigin is where player's avatar is drawn on cell 0.
func (b *Board) avatarOrigin(player int) sprig.Vec2 {
	return sprig.Vec2{
		X: 8 + float64(player%2)*(avatarSize+8),
		Y: 8 + float64(player/2)*(avatarSize+8),
	}
}

// AvatarTransform returns the local transform that moves player's avatar
// from cell 0 onto cell i.
func (b *Board) AvatarTransform(cell int) sprig.Mat4 {
	o := b.CellOrigin(cell)
	return sprig.Translate(float32(o.X), float32(o.Y), 0)
}

// DiceCenter returns the center of the die in root units.
func (b *Board) DiceCenter() sprig.Vec2 {
	return sprig.Vec2{
		X: b.boardExtent() + hudWidth/2,
		Y: b.boardExtent() - diceSize/2 - diceMargin,
	}
}

// SVG renders the annotated board document. The board stretches over the
// viewport minus the HUD column, the HUD sticks to the top-right corner and
// the die to the bottom-right corner.
func (b *Board) SVG() []byte {
	ext := b.boardExtent()
	width := ext + hudWidth

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		width, ext, width, ext)

	fmt.Fprintf(&buf, `  <g id="%s#layout{x={start=0, end=%d}, y='scale'}">`+"\n", BoardID, hudWidth)
	fmt.Fprintf(&buf, `    <rect x="0" y="0" width="%.0f" height="%.0f" fill="#f4f1de"/>`+"\n", ext, ext)
	for i := range b.cells {
		b.renderCell(&buf, i)
	}
	for p := range b.players {
		b.renderAvatar(&buf, p)
	}
	buf.WriteString("  </g>\n")

	b.renderHUD(&buf, ext)
	b.renderDice(&buf)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (b *Board) renderCell(buf *bytes.Buffer, i int) {
	o := b.CellOrigin(i)
	fill := "#81b29a"
	switch v := b.CellValue(i); {
	case i == 0:
		fill = "#f2cc8f"
	case v < 0:
		fill = "#e07a5f"
	}
	fmt.Fprintf(buf, `    <rect id="%s#clickable" x="%.0f" y="%.0f" width="%d" height="%d" fill="%s"/>`+"\n",
		CellID(i), o.X+2, o.Y+2, cellSize-4, cellSize-4, fill)
}

func (b *Board) renderAvatar(buf *bytes.Buffer, p int) {
	o := b.avatarOrigin(p)
	fmt.Fprintf(buf, `    <g id="%s#layout{x={start=%.0f}, y={start=%.0f}}">`+"\n", AvatarID(p), o.X, o.Y)
	fmt.Fprintf(buf, `      <circle cx="%.0f" cy="%.0f" r="%d" fill="%s"/>`+"\n",
		o.X+avatarSize/2, o.Y+avatarSize/2, avatarSize/2, avatarColors[p])
	buf.WriteString("    </g>\n")
}

func (b *Board) renderHUD(buf *bytes.Buffer, ext float64) {
	x := ext + hudMargin
	fmt.Fprintf(buf, `  <g id="%s#layout{x={end=%d}, y={start=%d}}">`+"\n", HUDID, hudMargin, hudMargin)
	fmt.Fprintf(buf, `    <rect x="%.0f" y="%d" width="%d" height="%d" fill="#3d405b"/>`+"\n",
		x, hudMargin, hudWidth-2*hudMargin, 40+24*b.players)
	fmt.Fprintf(buf, `    <text id="%s" x="%.0f" y="%d" font-size="14" fill="#ffffff">Player 1 to roll</text>`+"\n",
		TurnID, x+8, hudMargin+24)
	for p := range b.players {
		fmt.Fprintf(buf, `    <text id="%s" x="%.0f" y="%d" font-size="12" fill="%s">$%d</text>`+"\n",
			DollarsID(p), x+8, hudMargin+48+24*p, avatarColors[p], startMoney)
	}
	buf.WriteString("  </g>\n")
}

func (b *Board) renderDice(buf *bytes.Buffer) {
	c := b.DiceCenter()
	fmt.Fprintf(buf, `  <g id="%s#clickable#layout{x={end=%d}, y={end=%d}}">`+"\n", DiceID, diceMargin, diceMargin)
	fmt.Fprintf(buf, `    <rect x="%.0f" y="%.0f" width="%d" height="%d" fill="#ffffff"/>`+"\n",
		c.X-diceSize/2, c.Y-diceSize/2, diceSize, diceSize)
	fmt.Fprintf(buf, `    <text id="%s" x="%.0f" y="%.0f" font-size="20" fill="#000000">?</text>`+"\n",
		PipsID, c.X-6, c.Y+8)
	buf.WriteString("  </g>\n")
}
