package sprig

import "fmt"

// Handler receives application-level events from the View. Every method
// answers with commands that the View applies in the same frame.
type Handler interface {
	OnClick(id string) []Command
	OnTap(tap Tap) []Command
	OnNotify(cmd Command) []Command
}

// Frame is the output of one View.Tick.
type Frame struct {
	// Matrices is indexed by transform slot; element matrices already
	// include their animated local transform. MUST NOT be mutated.
	Matrices []Mat4
	// Version changes whenever Matrices changed.
	Version uint64
	// Global is the camera transform applied after every element matrix.
	Global Mat4

	Clicked []string
	Taps    []Tap
	// Texts holds every bound text. MUST NOT be mutated.
	Texts map[string]string
}

// postedCap is the capacity of the cross-goroutine command channel.
const postedCap = 64

// element is the animation state of one layout.
type element struct {
	spring    *SpringMat4
	tween     *MatrixTween
	tweenThen []Command
}

// View is the per-screen view model. It owns the layout registry, the
// gesture state, every spring and the bound texts, and advances them in a
// fixed order once per frame. All methods except Post must be called from
// the frame goroutine.
type View struct {
	cfg      Config
	layouts  *LayoutMachine
	scroll   *ScrollState
	animator Animator
	elements map[string]*element
	texts    map[string]string

	handler Handler
	store   EntityStore
	posted  chan Command

	injectQueue []Event
	script      *ScriptRunner
	debug       bool
	frames      uint64
}

// NewView creates a View from a validated config.
func NewView(cfg Config) (*View, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root, err := ParseConstraint(cfg.RootLayout)
	if err != nil {
		return nil, err
	}
	return &View{
		cfg:      cfg,
		layouts:  NewLayoutMachine(root),
		scroll:   NewScrollState(cfg.Gesture),
		elements: make(map[string]*element),
		texts:    make(map[string]string),
		posted:   make(chan Command, postedCap),
	}, nil
}

// Load registers the annotated tree.
func (v *View) Load(root Node) error {
	if err := v.layouts.Load(root); err != nil {
		return err
	}
	if v.debug {
		debugCheckLayouts(v.layouts)
	}
	return nil
}

// Layouts returns the layout registry.
func (v *View) Layouts() *LayoutMachine {
	return v.layouts
}

// Scroll returns the gesture state.
func (v *View) Scroll() *ScrollState {
	return v.scroll
}

// Animator returns the registry of active springs.
func (v *View) Animator() *Animator {
	return &v.animator
}

// SetHandler sets the application handler.
func (v *View) SetHandler(h Handler) {
	v.handler = h
}

// SetEntityStore sets the optional ECS bridge.
func (v *View) SetEntityStore(store EntityStore) {
	v.store = store
}

// SetDebugMode enables per-frame timing logs at debug level.
func (v *View) SetDebugMode(enabled bool) {
	v.debug = enabled
}

// Text returns the text bound to element id.
func (v *View) Text(id string) (string, bool) {
	t, ok := v.texts[id]
	return t, ok
}

// Texts returns every bound text. The returned map MUST NOT be mutated.
func (v *View) Texts() map[string]string {
	return v.texts
}

// Animate returns the spring animating layout id, creating an idle one
// resting at the layout's current local transform on first use.
func (v *View) Animate(id string) (*SpringMat4, error) {
	el, err := v.element(id)
	if err != nil {
		return nil, err
	}
	return el.spring, nil
}

func (v *View) element(id string) (*element, error) {
	if el, ok := v.elements[id]; ok {
		return el, nil
	}
	l, ok := v.layouts.Layout(id)
	if !ok {
		return nil, &LayoutError{ID: id, Err: ErrUnknownLayout}
	}
	s, err := NewSpringMat4(l.Local(), v.cfg.Spring)
	if err != nil {
		return nil, err
	}
	el := &element{spring: s}
	v.elements[id] = el
	return el, nil
}

// Post queues a command from any goroutine. It is applied at the start of
// the next Tick. Post reports false when the queue is full.
func (v *View) Post(cmd Command) bool {
	select {
	case v.posted <- cmd:
		return true
	default:
		return false
	}
}

// Apply runs commands immediately. Notify commands are answered by the
// handler and their answers applied in turn, breadth first.
func (v *View) Apply(cmds []Command) {
	queue := cmds
	for len(queue) > 0 {
		cmd := queue[0]
		queue = queue[1:]
		switch cmd.Type {
		case CommandAnimate:
			el, err := v.element(cmd.ID)
			if err != nil {
				Logger().Warn("cannot animate", "id", cmd.ID, "err", err)
				continue
			}
			el.tween = nil
			el.tweenThen = nil
			el.spring.SpringTo(cmd.Target, cmd.Then)
			v.animator.Track(el.spring)

		case CommandTween:
			el, err := v.element(cmd.ID)
			if err != nil {
				Logger().Warn("cannot tween", "id", cmd.ID, "err", err)
				continue
			}
			el.spring.settle()
			v.animator.untrack(el.spring)
			el.spring.Target = cmd.Target
			el.tween = TweenMat4(&el.spring.Current, cmd.Target, cmd.Duration, cmd.Ease)
			el.tweenThen = cmd.Then

		case CommandSetText:
			v.texts[cmd.ID] = cmd.Text

		case CommandNotify:
			if v.handler != nil {
				queue = append(queue, v.handler.OnNotify(cmd)...)
			}
		}
	}
}

// Tick runs one frame in a fixed order:
//
//  1. input application (posted commands, one injected event, then events)
//  2. layout resolution
//  3. hit testing and handler callbacks
//  4. spring and tween advance, continuations applied
//  5. matrix upload
func (v *View) Tick(events []Event) Frame {
	var stats debugStats
	v.frames++

	elapsed := v.debugTimer()
	v.drainPosted()
	if v.script != nil {
		v.script.step(v)
	}
	if ev, ok := v.popInjected(); ok {
		events = append([]Event{ev}, events...)
	}

	var frame Frame
	var presses []Event
	for _, ev := range events {
		if ev.Type == EventResize {
			v.layouts.Resize(ev.Width, ev.Height)
		}
		if tap, ok := v.scroll.Handle(ev, v.layouts.Display()); ok {
			frame.Taps = append(frame.Taps, tap)
		}
		if ev.Type == EventPointerDown || (ev.Type == EventTouch && ev.Phase == TouchStarted) {
			presses = append(presses, ev)
		}
	}
	v.scroll.Update(float32(v.cfg.Spring.Step))
	v.layouts.SetCamera(v.scroll.Global)
	stats.inputTime = elapsed()

	elapsed = v.debugTimer()
	v.layouts.Resolve()
	stats.resolveTime = elapsed()

	elapsed = v.debugTimer()
	var cmds []Command
	for _, ev := range presses {
		id, ok := v.layouts.HandleEvent(ev)
		if !ok {
			continue
		}
		frame.Clicked = append(frame.Clicked, id)
		v.emit(InteractionEvent{Type: InteractionClick, ID: id, X: ev.X, Y: ev.Y})
		if v.handler != nil {
			cmds = append(cmds, v.handler.OnClick(id)...)
		}
	}
	for _, tap := range frame.Taps {
		v.emit(InteractionEvent{Type: InteractionTap, X: tap.X, Y: tap.Y})
		if v.handler != nil {
			cmds = append(cmds, v.handler.OnTap(tap)...)
		}
	}
	v.Apply(cmds)
	stats.hitTime = elapsed()

	elapsed = v.debugTimer()
	stats.springs = v.animator.Len()
	v.Apply(v.animator.Tick())
	v.Apply(v.tickTweens(float32(v.cfg.Spring.Step)))
	v.syncLocals()
	stats.animateTime = elapsed()

	frame.Matrices = v.layouts.Matrices()
	frame.Version = v.layouts.Version()
	frame.Global = v.scroll.Global
	frame.Texts = v.texts

	stats.events = len(events)
	stats.clicks = len(frame.Clicked)
	v.debugLog(stats)
	return frame
}

func (v *View) drainPosted() {
	for {
		select {
		case cmd := <-v.posted:
			v.Apply([]Command{cmd})
		default:
			return
		}
	}
}

func (v *View) tickTweens(dt float32) []Command {
	var out []Command
	for _, id := range sortedKeys(v.elements) {
		el := v.elements[id]
		if el.tween == nil {
			continue
		}
		el.tween.Update(dt)
		if el.tween.Done {
			el.spring.Current = el.spring.Target
			out = append(out, el.tweenThen...)
			el.tween = nil
			el.tweenThen = nil
		}
	}
	return out
}

// syncLocals copies each spring's current matrix into its layout's local
// transform.
func (v *View) syncLocals() {
	for id, el := range v.elements {
		if err := v.layouts.SetLocal(id, el.spring.Current); err != nil {
			Logger().Warn("cannot sync local transform", "id", id, "err", err)
		}
	}
}

func (v *View) emit(ev InteractionEvent) {
	if v.store != nil {
		v.store.EmitEvent(ev)
	}
}

// Idle reports whether nothing is animating and no synthetic input is
// pending.
func (v *View) Idle() bool {
	if v.animator.Len() > 0 || len(v.injectQueue) > 0 || v.scroll.Animating() {
		return false
	}
	for _, el := range v.elements {
		if el.tween != nil {
			return false
		}
	}
	return true
}

// String summarizes the view for debugging.
func (v *View) String() string {
	return fmt.Sprintf("View{layouts: %d, clickables: %d, springs: %d/%d, frame: %d}",
		len(v.layouts.Layouts()), len(v.layouts.Clickables()),
		v.animator.Len(), len(v.elements), v.frames)
}
