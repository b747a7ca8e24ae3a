package sprig

// Animator tracks the springs that are currently animating. It never owns
// spring state: the View keeps every spring and the animator only holds
// references while they move.
type Animator struct {
	active []*SpringMat4
}

// Track adds s to the active set if it is not already there.
func (a *Animator) Track(s *SpringMat4) {
	for _, t := range a.active {
		if t == s {
			return
		}
	}
	a.active = append(a.active, s)
}

// untrack removes s from the active set without stepping it.
func (a *Animator) untrack(s *SpringMat4) {
	for i, t := range a.active {
		if t == s {
			copy(a.active[i:], a.active[i+1:])
			a.active[len(a.active)-1] = nil
			a.active = a.active[:len(a.active)-1]
			return
		}
	}
}

// Len returns the number of active springs.
func (a *Animator) Len() int {
	return len(a.active)
}

// Tracking reports whether s is in the active set.
func (a *Animator) Tracking(s *SpringMat4) bool {
	for _, t := range a.active {
		if t == s {
			return true
		}
	}
	return false
}

// Tick advances every active spring by one step, drops the ones that
// converged (or were never started) and returns their continuations in
// registration order.
func (a *Animator) Tick() []Command {
	var out []Command
	kept := a.active[:0]
	for _, s := range a.active {
		done, then := s.Step()
		if done {
			out = append(out, then...)
			continue
		}
		if s.IsAnimating() {
			kept = append(kept, s)
		}
	}
	clear(a.active[len(kept):])
	a.active = kept
	return out
}
