package sprig

import (
	"errors"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		id   string
		want Tags
	}{
		{"plain", Tags{Name: "plain"}},
		{"btn#clickable", Tags{Name: "btn", Clickable: true}},
		{"die#include{die_face}", Tags{Name: "die", Include: "die_face"}},
		{"cell#component{cell}#clickable", Tags{Name: "cell", Component: "cell", Clickable: true}},
		{"x#inkscape_label#clickable", Tags{Name: "x", Clickable: true}},
		{"#clickable", Tags{Name: "", Clickable: true}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParseTags(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			if got.Layout != nil {
				t.Errorf("Layout = %v, want nil", *got.Layout)
			}
			got.Layout = nil
			if got != tt.want {
				t.Errorf("ParseTags(%q) = %+v, want %+v", tt.id, got, tt.want)
			}
		})
	}
}

func TestParseTagsLayout(t *testing.T) {
	got, err := ParseTags("hud#clickable#layout{x={end=12},y='center'}#include{die}")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "hud" || !got.Clickable || got.Include != "die" {
		t.Errorf("tags = %+v", got)
	}
	if got.Layout == nil {
		t.Fatal("Layout = nil")
	}
	want := Constraint{X: End(12), Y: Center(0)}
	if *got.Layout != want {
		t.Errorf("Layout = %+v, want %+v", *got.Layout, want)
	}
}

func TestParseTagsBadLayout(t *testing.T) {
	for _, id := range []string{
		"hud#layout{x='sideways'}",
		"hud#layout{x='scale'",
		"hud#layout{x='scale'}}x",
		"hud#Layout{x='scale'}",
		"hud#layout {x='scale'}",
		"hud#layout{x='scale'#clickable",
		"hud#clickable#LAYOUT",
	} {
		t.Run(id, func(t *testing.T) {
			_, err := ParseTags(id)
			if !errors.Is(err, ErrUnknownConstraintAxis) {
				t.Fatalf("err = %v, want ErrUnknownConstraintAxis", err)
			}
			var le *LayoutError
			if !errors.As(err, &le) || le.ID != "hud" {
				t.Errorf("err = %v, want LayoutError for hud", err)
			}
		})
	}
}

func TestParseTagsUnbalancedBraces(t *testing.T) {
	for _, id := range []string{"die#include{pip", "die#include{pip}}#clickable"} {
		if _, err := ParseTags(id); !errors.Is(err, ErrMalformedTags) {
			t.Errorf("ParseTags(%q) err = %v, want ErrMalformedTags", id, err)
		}
	}
}

func TestParseTagsIgnoresLookalikes(t *testing.T) {
	got, err := ParseTags("hud#layouts#clickable")
	if err != nil {
		t.Fatal(err)
	}
	if got.Layout != nil || !got.Clickable {
		t.Errorf("tags = %+v", got)
	}
}

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		record string
		want   Constraint
	}{
		{"", Constraint{}},
		{"{}", Constraint{}},
		{"{x='start', y='end'}", Constraint{X: Start(0), Y: End(0)}},
		{"{x='scale', y='fill'}", Constraint{X: ScaleFill(), Y: ScaleFill()}},
		{"{x='stretch'}", Constraint{X: StartAndEnd(0, 0)}},
		{"{x={start=8, end=4.5}}", Constraint{X: StartAndEnd(8, 4.5)}},
		{"{x={center=-4}, y={start=2}}", Constraint{X: Center(-4), Y: Start(2)}},
		{`{x="center"}`, Constraint{X: Center(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.record, func(t *testing.T) {
			got, err := ParseConstraint(tt.record)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseConstraint(%q) = %+v, want %+v", tt.record, got, tt.want)
			}
		})
	}
}

func TestParseConstraintErrors(t *testing.T) {
	for _, record := range []string{
		"{z='start'}",
		"{x='middle'}",
		"{x={start='a'}}",
		"{x={start=1, center=2}}",
		"{x={}}",
		"{x=3}",
		"{x=",
		"{x='scale'",
		"{x='scale'}}",
		"{x='scale'} y='scale'",
	} {
		t.Run(record, func(t *testing.T) {
			if _, err := ParseConstraint(record); !errors.Is(err, ErrUnknownConstraintAxis) {
				t.Errorf("err = %v, want ErrUnknownConstraintAxis", err)
			}
		})
	}
}

func TestSplitTagsKeepsBraces(t *testing.T) {
	got, balanced := splitTags("a#layout{x={start=1}}#b")
	want := []string{"a", "layout{x={start=1}}", "b"}
	if !balanced {
		t.Error("balanced = false")
	}
	if len(got) != len(want) {
		t.Fatalf("splitTags = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitTagsUnbalanced(t *testing.T) {
	for _, id := range []string{"a#layout{x='scale'#b", "a#b}", "a{{}"} {
		if _, balanced := splitTags(id); balanced {
			t.Errorf("splitTags(%q) reported balanced braces", id)
		}
	}
}

func TestConstraintStringRoundTrip(t *testing.T) {
	tests := []struct {
		c    Constraint
		want string
	}{
		{Constraint{}, "{x='stretch', y='stretch'}"},
		{Constraint{X: Start(0), Y: End(12)}, "{x='start', y={end=12}}"},
		{Constraint{X: Center(-4.5), Y: ScaleFill()}, "{x={center=-4.5}, y='scale'}"},
		{Constraint{X: StartAndEnd(8, 220), Y: Center(0)}, "{x={start=8, end=220}, y='center'}"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.c.String(); got != tt.want {
				t.Fatalf("String = %q, want %q", got, tt.want)
			}
			back, err := ParseConstraint(tt.want)
			if err != nil {
				t.Fatal(err)
			}
			if back != tt.c {
				t.Errorf("round trip = %+v, want %+v", back, tt.c)
			}
		})
	}
}
