package sprig

import (
	"encoding/json"
	"fmt"
	"os"
)

// scriptStep is a single action of an input script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure of an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a compiled input script into a View, one frame at
// a time. Each step expands into a fixed run of frames when the script is
// loaded, so a script that loads is guaranteed to play to the end.
//
// Supported actions: click, drag, resize, wheel, wait.
type ScriptRunner struct {
	frames []scriptFrame
	next   int
}

// scriptFrame is what the runner feeds a single Tick: one synthetic event,
// or nothing for an idle frame.
type scriptFrame struct {
	ev   Event
	idle bool
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	r := &ScriptRunner{}
	for i, st := range script.Steps {
		frames, err := st.compile()
		if err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
		r.frames = append(r.frames, frames...)
	}
	return r, nil
}

// LoadScriptFile reads and parses an input script from disk.
func LoadScriptFile(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input script: %w", err)
	}
	return LoadScript(data)
}

func (st scriptStep) compile() ([]scriptFrame, error) {
	var evs []Event
	switch st.Action {
	case "click":
		evs = clickEvents(st.X, st.Y)
	case "drag":
		evs = dragEvents(Vec2{X: st.FromX, Y: st.FromY}, Vec2{X: st.ToX, Y: st.ToY}, st.Frames)
	case "resize":
		evs = []Event{ResizeEvent(st.Width, st.Height)}
	case "wheel":
		evs = []Event{WheelEvent(st.DX, st.DY)}
	case "wait":
		idle := make([]scriptFrame, max(st.Frames, 1))
		for i := range idle {
			idle[i].idle = true
		}
		return idle, nil
	default:
		return nil, fmt.Errorf("unknown action %q", st.Action)
	}
	frames := make([]scriptFrame, len(evs))
	for i, ev := range evs {
		frames[i].ev = ev
	}
	return frames, nil
}

// SetScript attaches a runner to the view. The runner is stepped at the
// start of every Tick.
func (v *View) SetScript(runner *ScriptRunner) {
	v.script = runner
}

// Done reports whether every frame of the script has been played.
func (r *ScriptRunner) Done() bool {
	return r.next >= len(r.frames)
}

// Remaining returns the number of frames left to play.
func (r *ScriptRunner) Remaining() int {
	return len(r.frames) - r.next
}

// step feeds the next frame into the view's injection queue. Events queued
// by direct Inject calls play out first; the script holds its place
// meanwhile.
func (r *ScriptRunner) step(v *View) {
	if r.Done() || v.Pending() > 0 {
		return
	}
	fr := r.frames[r.next]
	r.next++
	if fr.idle {
		return
	}
	Logger().Debug("script event", "frame", r.next, "type", fr.ev.Type)
	v.injectQueue = append(v.injectQueue, fr.ev)
}
