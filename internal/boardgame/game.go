package boardgame

import (
	"fmt"
	"math/rand/v2"

	"github.com/phanxgames/sprig"
)

// Notify tags used to chain the turn sequence.
const (
	notifyRolled = "rolled"
	notifyMoved  = "moved"
)

// diceKick is the scale of the die at the top of its roll animation.
const diceKick = 1.35

// RollFunc returns a die roll in 1..6.
type RollFunc func() int

// Game is the turn logic. It implements sprig.Handler: a tap anywhere (or a
// click on the die) rolls for the current player, the die kicks, the
// avatar slides cell by cell and the HUD texts update once it lands.
type Game struct {
	board *Board
	turns *TurnRing
	roll  RollFunc

	positions []int
	dollars   []int

	rolling bool
	pending int
	winner  int
}

// NewGame creates a game on board. A nil roll uses math/rand/v2.
func NewGame(board *Board, roll RollFunc) *Game {
	if roll == nil {
		roll = func() int { return rand.IntN(6) + 1 }
	}
	g := &Game{
		board:     board,
		turns:     NewTurnRing(board.Players()),
		roll:      roll,
		positions: make([]int, board.Players()),
		dollars:   make([]int, board.Players()),
		winner:    -1,
	}
	for p := range g.dollars {
		g.dollars[p] = startMoney
	}
	return g
}

// Start returns the commands that set the initial HUD texts.
func (g *Game) Start() []sprig.Command {
	cmds := []sprig.Command{sprig.SetText(TurnID, g.turnText()), sprig.SetText(PipsID, "?")}
	for p := range g.dollars {
		cmds = append(cmds, sprig.SetText(DollarsID(p), g.dollarsText(p)))
	}
	return cmds
}

// Rolling reports whether a turn is being animated.
func (g *Game) Rolling() bool { return g.rolling }

// Position returns the cell player stands on.
func (g *Game) Position(player int) int { return g.positions[player] }

// Dollars returns player's money.
func (g *Game) Dollars(player int) int { return g.dollars[player] }

// Winner returns the last player standing.
func (g *Game) Winner() (int, bool) { return g.winner, g.winner >= 0 }

// Turns returns the turn ring.
func (g *Game) Turns() *TurnRing { return g.turns }

// OnClick rolls when the die is clicked.
func (g *Game) OnClick(id string) []sprig.Command {
	if id != DiceID {
		return nil
	}
	return g.startRoll()
}

// OnTap rolls for the current player.
func (g *Game) OnTap(sprig.Tap) []sprig.Command {
	return g.startRoll()
}

// OnNotify advances the turn sequence.
func (g *Game) OnNotify(cmd sprig.Command) []sprig.Command {
	switch cmd.ID {
	case notifyRolled:
		return g.move()
	case notifyMoved:
		return g.endTurn()
	}
	return nil
}

func (g *Game) startRoll() []sprig.Command {
	if g.rolling || g.winner >= 0 {
		return nil
	}
	if _, ok := g.turns.Current(); !ok {
		return nil
	}
	g.rolling = true
	g.pending = g.roll()

	c := g.board.DiceCenter()
	cx, cy := float32(c.X), float32(c.Y)
	kick := sprig.Translate(cx, cy, 0).
		Mul(sprig.Scale(diceKick, diceKick, 1)).
		Mul(sprig.Translate(-cx, -cy, 0))

	return []sprig.Command{
		sprig.SetText(PipsID, fmt.Sprint(g.pending)),
		sprig.AnimateElement(DiceID, kick,
			sprig.AnimateElement(DiceID, sprig.Identity(), sprig.Notify(notifyRolled)),
		),
	}
}

// move updates the model and returns the avatar animation: one spring per
// cell, each chained onto the previous one's continuation.
func (g *Game) move() []sprig.Command {
	player, ok := g.turns.Current()
	if !ok {
		return nil
	}
	from := g.positions[player]
	steps := g.pending
	g.pending = 0

	for s := 1; s <= steps; s++ {
		if (from+s)%g.board.Cells() == 0 {
			g.dollars[player] += startBonus
		}
	}
	to := (from + steps) % g.board.Cells()
	g.positions[player] = to
	g.dollars[player] += g.board.CellValue(to)

	sprig.Logger().Debug("move", "player", player, "from", from, "to", to, "dollars", g.dollars[player])

	then := []sprig.Command{
		sprig.SetText(DollarsID(player), g.dollarsText(player)),
		sprig.Notify(notifyMoved),
	}
	for s := steps; s >= 1; s-- {
		cell := (from + s) % g.board.Cells()
		then = []sprig.Command{sprig.AnimateElement(AvatarID(player), g.board.AvatarTransform(cell), then...)}
	}
	return then
}

func (g *Game) endTurn() []sprig.Command {
	player, ok := g.turns.Current()
	if !ok {
		return nil
	}
	g.rolling = false

	var cmds []sprig.Command
	if g.dollars[player] < 0 {
		g.turns.Retire(player)
		sprig.Logger().Info("player retired", "player", player)
		cmds = append(cmds, sprig.SetText(DollarsID(player), "bankrupt"))
	} else {
		g.turns.Advance()
	}

	if g.turns.Len() == 1 {
		g.winner, _ = g.turns.Current()
		sprig.Logger().Info("game over", "winner", g.winner)
	}
	return append(cmds, sprig.SetText(TurnID, g.turnText()))
}

func (g *Game) turnText() string {
	if g.winner >= 0 {
		return fmt.Sprintf("Player %d wins", g.winner+1)
	}
	p, _ := g.turns.Current()
	return fmt.Sprintf("Player %d to roll", p+1)
}

func (g *Game) dollarsText(player int) string {
	return fmt.Sprintf("$%d", g.dollars[player])
}
