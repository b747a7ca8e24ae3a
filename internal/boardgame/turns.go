package boardgame

// TurnRing is the ring of players still in the game. Retired players are
// removed from the ring, so the turn order never has to skip over them.
type TurnRing struct {
	players []int
	cur     int
}

// NewTurnRing creates a ring of players 0..n-1 with player 0 to move.
func NewTurnRing(n int) *TurnRing {
	r := &TurnRing{players: make([]int, n)}
	for i := range r.players {
		r.players[i] = i
	}
	return r
}

// Current returns the player to move. ok is false once every player has
// retired.
func (r *TurnRing) Current() (player int, ok bool) {
	if len(r.players) == 0 {
		return 0, false
	}
	return r.players[r.cur], true
}

// Advance passes the turn to the next active player.
func (r *TurnRing) Advance() {
	if len(r.players) == 0 {
		return
	}
	r.cur = (r.cur + 1) % len(r.players)
}

// Retire removes player from the ring. When the current player retires the
// turn passes to the player after it. It reports whether player was active.
func (r *TurnRing) Retire(player int) bool {
	for i, p := range r.players {
		if p != player {
			continue
		}
		r.players = append(r.players[:i], r.players[i+1:]...)
		if i < r.cur {
			r.cur--
		}
		if r.cur >= len(r.players) {
			r.cur = 0
		}
		return true
	}
	return false
}

// Len returns the number of active players.
func (r *TurnRing) Len() int {
	return len(r.players)
}

// Players returns the active players in turn order starting with the
// current one.
func (r *TurnRing) Players() []int {
	out := make([]int, 0, len(r.players))
	for i := range r.players {
		out = append(out, r.players[(r.cur+i)%len(r.players)])
	}
	return out
}
