package main

import (
	"os"
	"testing"

	"gioui.org/f32"
	"gioui.org/op"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
	"git.sr.ht/~whereswaldon/streamgraph/plot"
)

func TestCoordinateConversion(t *testing.T) {
	type testcase struct {
		p, origin vec.Vec2
		pxPerDp   float32
		expected  f32.Point
	}
	for _, tc := range []testcase{
		{p: vec.Vec2{X: 10, Y: 20}, pxPerDp: 1, expected: f32.Pt(10, 20)},
		{p: vec.Vec2{X: 10, Y: 20}, origin: vec.Vec2{X: 20, Y: 100}, pxPerDp: 2, expected: f32.Pt(60, 240)},
	} {
		got := toPx(tc.p, tc.origin, tc.pxPerDp)
		if got != tc.expected {
			t.Errorf("expected %v, got %v", tc.expected, got)
		}
		back := toCanvas(got, tc.pxPerDp)
		if expected := tc.p.Add(tc.origin); back != expected {
			t.Errorf("expected %v back, got %v", expected, back)
		}
	}
}

func TestClipPathConsumesCoords(t *testing.T) {
	data := plot.AreaPath([]plot.AreaPoint{{X: 0, Y0: 10, Y1: 2}, {X: 10, Y0: 12, Y1: 4}, {X: 20, Y0: 9, Y1: 1}})
	var ops op.Ops
	// Every coordinate must be consumed exactly once; a mismatch panics.
	clipPath(&ops, data, vec.Vec2{}, 1)
	clipPath(&ops, &path.Data{}, vec.Vec2{}, 1)
}

func TestStreamChartInitialized(t *testing.T) {
	c := NewStreamChart(plot.NewChart(backend.DefaultCatalog(), plot.DefaultConfig()))
	if c.Initialized() {
		t.Errorf("expected a fresh chart to be uninitialized")
	}
	c.Render(nil)
	if c.Initialized() {
		t.Errorf("expected empty rows to leave the chart uninitialized")
	}
	c.Render([]backend.RawRow{{"Date": "2024-01-01", "GPT-4": "1"}})
	if !c.Initialized() {
		t.Errorf("expected rows to initialize the chart")
	}
}

func TestPickedName(t *testing.T) {
	if name := pickedName(nil); name != "picked.csv" {
		t.Errorf("expected picked.csv, got %s", name)
	}
	f, err := os.CreateTemp(t.TempDir(), "*.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if name := pickedName(f); name != f.Name() {
		t.Errorf("expected %s, got %s", f.Name(), name)
	}
}
