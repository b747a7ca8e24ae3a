package sprig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "resize", "width": 1024, "height": 768},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 6},
			{"action": "wheel", "dy": -2}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// resize 1 + click 2 + wait 3 + drag 6 + wheel 1
	if runner.Remaining() != 13 {
		t.Fatalf("expected 13 frames, got %d", runner.Remaining())
	}
	want := map[int]Event{
		0:  ResizeEvent(1024, 768),
		1:  PointerDownEvent(100, 200),
		2:  PointerUpEvent(100, 200),
		6:  PointerDownEvent(1, 2),
		11: PointerUpEvent(3, 4),
		12: WheelEvent(0, -2),
	}
	for i, ev := range want {
		if fr := runner.frames[i]; fr.idle || fr.ev != ev {
			t.Errorf("frame %d = %+v, want %+v", i, fr, ev)
		}
	}
	for i := 3; i < 6; i++ {
		if !runner.frames[i].idle {
			t.Errorf("frame %d not idle", i)
		}
	}
}

func TestDragEvents(t *testing.T) {
	evs := dragEvents(Vec2{X: 0, Y: 10}, Vec2{X: 30, Y: 10}, 5)
	want := []Event{
		PointerDownEvent(0, 10),
		PointerMoveEvent(7.5, 10),
		PointerMoveEvent(15, 10),
		PointerMoveEvent(22.5, 10),
		PointerUpEvent(30, 10),
	}
	if len(evs) != len(want) {
		t.Fatalf("events = %+v", evs)
	}
	for i := range want {
		if evs[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, evs[i], want[i])
		}
	}
}

func TestScriptWaitsForDirectInjections(t *testing.T) {
	v, _ := newTestView(t)
	runner, err := LoadScript([]byte(`{"steps": [{"action": "resize", "width": 400, "height": 300}]}`))
	if err != nil {
		t.Fatal(err)
	}
	v.SetScript(runner)
	v.InjectClick(10, 10)

	v.Tick(nil)
	v.Tick(nil)
	if runner.Done() {
		t.Fatal("script advanced while injections were pending")
	}
	v.Tick(nil)
	if !runner.Done() {
		t.Fatal("script not done")
	}
	if d := v.Layouts().Display(); d.Width != 400 {
		t.Errorf("Display = %v, want resized", d)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	for name, data := range map[string]string{
		"invalid json":   `not json`,
		"empty":          `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "screenshot"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadScript([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.json")
	if err := os.WriteFile(path, []byte(`{"steps": [{"action": "wait", "frames": 1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScriptFile(path); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScriptFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestScriptRunnerDrivesView(t *testing.T) {
	v, h := newTestView(t)
	runner, err := LoadScript([]byte(`{
		"steps": [
			{"action": "click", "x": 750, "y": 25},
			{"action": "wait", "frames": 2},
			{"action": "resize", "width": 400, "height": 300}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	v.SetScript(runner)

	for i := 0; i < 20 && !runner.Done(); i++ {
		v.Tick(nil)
	}
	if !runner.Done() {
		t.Fatal("runner not done after 20 frames")
	}
	if len(h.clicks) != 1 || h.clicks[0] != "hud" {
		t.Errorf("clicks = %v", h.clicks)
	}
	if d := v.Layouts().Display(); d.Width != 400 {
		t.Errorf("Display = %v, want resized", d)
	}
}
