package sprig

import "math"

// springCoefficients advance a damped harmonic oscillator by one fixed step
// in closed form:
//
//	x' = target + (x-target)*posPos + v*posVel
//	v' =          (x-target)*velPos + v*velVel
type springCoefficients struct {
	posPos, posVel, velPos, velVel float64
}

// newSpringCoefficients computes the step coefficients for angular frequency
// omega, damping ratio zeta in (0, 1] and step dt.
func newSpringCoefficients(omega, zeta, dt float64) springCoefficients {
	if zeta >= 1 {
		// Critically damped.
		expTerm := math.Exp(-omega * dt)
		timeExp := dt * expTerm
		timeExpFreq := timeExp * omega
		return springCoefficients{
			posPos: timeExpFreq + expTerm,
			posVel: timeExp,
			velPos: -omega * timeExpFreq,
			velVel: -timeExpFreq + expTerm,
		}
	}

	// Under-damped.
	omegaZeta := omega * zeta
	alpha := omega * math.Sqrt(1-zeta*zeta)
	expTerm := math.Exp(-omegaZeta * dt)
	sin, cos := math.Sincos(alpha * dt)
	expSin := expTerm * sin
	expCos := expTerm * cos
	expOmegaZetaSinOverAlpha := expTerm * omegaZeta * sin / alpha
	return springCoefficients{
		posPos: expCos + expOmegaZetaSinOverAlpha,
		posVel: expSin / alpha,
		velPos: -expSin*alpha - omegaZeta*expOmegaZetaSinOverAlpha,
		velVel: expCos - expOmegaZetaSinOverAlpha,
	}
}

// SpringMat4 animates a matrix toward a target by running an independent
// damped spring on each of the 16 cells. Convergence is judged on the whole
// matrix. A spring is Idle until SpringTo is called and returns to Idle
// when it converges.
type SpringMat4 struct {
	Current  Mat4
	Velocity Mat4
	Target   Mat4

	cfg       SpringConfig
	coeffs    springCoefficients
	animating bool
	then      []Command
}

// NewSpringMat4 creates an idle spring resting at initial.
func NewSpringMat4(initial Mat4, cfg SpringConfig) (*SpringMat4, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SpringMat4{
		Current: initial,
		Target:  initial,
		cfg:     cfg,
		coeffs:  newSpringCoefficients(cfg.AngularFrequency, cfg.DampingRatio, cfg.Step),
	}, nil
}

// SpringTo starts (or retargets) the animation toward target. Velocity is
// kept so chained and interrupted animations stay smooth. A continuation
// still pending from a previous SpringTo is discarded without running.
func (s *SpringMat4) SpringTo(target Mat4, then []Command) {
	s.Target = target
	s.then = then
	s.animating = true
}

// IsAnimating reports whether the spring is moving toward its target.
func (s *SpringMat4) IsAnimating() bool {
	return s.animating
}

// Config returns the spring parameters.
func (s *SpringMat4) Config() SpringConfig {
	return s.cfg
}

// Converged reports whether the current value and velocity are within the
// configured epsilons of rest at the target.
func (s *SpringMat4) Converged() bool {
	return float64(s.Current.MaxAbsDiff(s.Target)) < s.cfg.PositionEpsilon &&
		float64(s.Velocity.MaxAbs()) < s.cfg.VelocityEpsilon
}

// Step advances the simulation by one fixed step. When the spring
// converges it snaps to the target, becomes idle and returns its
// continuation; done is true exactly once per SpringTo.
func (s *SpringMat4) Step() (done bool, then []Command) {
	if !s.animating {
		return false, nil
	}
	c := s.coeffs
	for i := range s.Current {
		target := float64(s.Target[i])
		x := float64(s.Current[i]) - target
		v := float64(s.Velocity[i])
		s.Current[i] = float32(target + x*c.posPos + v*c.posVel)
		s.Velocity[i] = float32(x*c.velPos + v*c.velVel)
	}
	if !s.Converged() {
		return false, nil
	}
	s.Current = s.Target
	s.Velocity = Mat4{}
	s.animating = false
	then = s.then
	s.then = nil
	return true, then
}

// settle stops the spring where it is, dropping velocity and any pending
// continuation. Used when a fixed-duration tween takes over the element.
func (s *SpringMat4) settle() {
	s.Target = s.Current
	s.Velocity = Mat4{}
	s.animating = false
	s.then = nil
}
