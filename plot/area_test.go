package plot

import (
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

func TestAreaPathCommands(t *testing.T) {
	type testcase struct {
		name     string
		pts      []AreaPoint
		expected []path.Command
	}
	m, l, c, z := path.CmdMoveTo, path.CmdLineTo, path.CmdCubeTo, path.CmdClose
	for _, tc := range []testcase{
		{name: "empty"},
		{
			name:     "single point",
			pts:      []AreaPoint{{X: 5, Y0: 10, Y1: 2}},
			expected: []path.Command{m, l, z},
		},
		{
			name:     "two points",
			pts:      []AreaPoint{{X: 0, Y0: 10, Y1: 2}, {X: 10, Y0: 12, Y1: 4}},
			expected: []path.Command{m, l, l, l, z},
		},
		{
			name:     "three points",
			pts:      []AreaPoint{{X: 0, Y0: 10, Y1: 2}, {X: 10, Y0: 12, Y1: 4}, {X: 20, Y0: 9, Y1: 1}},
			expected: []path.Command{m, c, c, l, c, c, z},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := AreaPath(tc.pts)
			if len(p.Cmds) != len(tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, p.Cmds)
			}
			for i := range p.Cmds {
				if p.Cmds[i] != tc.expected[i] {
					t.Errorf("command %d: expected %v, got %v", i, tc.expected[i], p.Cmds[i])
				}
			}
		})
	}
}

func TestAreaPathEndpoints(t *testing.T) {
	pts := []AreaPoint{{X: 0, Y0: 10, Y1: 2}, {X: 10, Y0: 12, Y1: 4}, {X: 20, Y0: 9, Y1: 1}}
	p := AreaPath(pts)
	start := vec.Vec2{X: 0, Y: 2}
	if p.Coords[0] != start {
		t.Errorf("expected path to start at %v, got %v", start, p.Coords[0])
	}
	// The first cubic's first control point sits on the start point, and
	// the last control point of the upper edge on its end point.
	if p.Coords[1] != start {
		t.Errorf("expected first control point %v, got %v", start, p.Coords[1])
	}
	end := vec.Vec2{X: 20, Y: 1}
	if p.Coords[5] != end || p.Coords[6] != end {
		t.Errorf("expected upper edge to end at %v with a matching control point, got %v and %v", end, p.Coords[5], p.Coords[6])
	}
	if p.Coords[7] != (vec.Vec2{X: 20, Y: 9}) {
		t.Errorf("expected lower edge to start at the last point, got %v", p.Coords[7])
	}
}

func TestAreaPathPassesThroughPoints(t *testing.T) {
	pts := []AreaPoint{{X: 0, Y0: 10, Y1: 2}, {X: 10, Y0: 12, Y1: 4}, {X: 20, Y0: 9, Y1: 1}}
	p := AreaPath(pts)
	// Curve end points are every third coordinate after the move.
	expected := []vec.Vec2{{X: 10, Y: 4}, {X: 20, Y: 1}}
	for i, e := range expected {
		if got := p.Coords[3*(i+1)]; got != e {
			t.Errorf("expected curve %d to end at %v, got %v", i, e, got)
		}
	}
}

func TestContainsEvenOdd(t *testing.T) {
	square := [][]vec.Vec2{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}}
	hole := append(square, []vec.Vec2{{X: 3, Y: 3}, {X: 7, Y: 3}, {X: 7, Y: 7}, {X: 3, Y: 7}})
	type testcase struct {
		name     string
		polys    [][]vec.Vec2
		pt       vec.Vec2
		expected bool
	}
	for _, tc := range []testcase{
		{name: "inside", polys: square, pt: vec.Vec2{X: 5, Y: 5}, expected: true},
		{name: "outside", polys: square, pt: vec.Vec2{X: 15, Y: 5}},
		{name: "above", polys: square, pt: vec.Vec2{X: 5, Y: -1}},
		{name: "in hole", polys: hole, pt: vec.Vec2{X: 5, Y: 5}},
		{name: "around hole", polys: hole, pt: vec.Vec2{X: 1, Y: 5}, expected: true},
	} {
		if got := containsEvenOdd(tc.polys, tc.pt); got != tc.expected {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestFlattenCurve(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		CubeTo(vec.Vec2{X: 0, Y: 10}, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 10, Y: 0}).
		Close()
	polys := flatten(p)
	if len(polys) != 1 {
		t.Fatalf("expected one polygon, got %d", len(polys))
	}
	poly := polys[0]
	if len(poly) < 4 {
		t.Errorf("expected the curve to be subdivided, got %d points", len(poly))
	}
	if last := poly[len(poly)-1]; last != (vec.Vec2{X: 10, Y: 0}) {
		t.Errorf("expected polygon to end at the curve end, got %v", last)
	}
	if !containsEvenOdd(polys, vec.Vec2{X: 5, Y: 5}) {
		t.Errorf("expected the bulge of the curve to be inside")
	}
	if containsEvenOdd(polys, vec.Vec2{X: 5, Y: 9}) {
		t.Errorf("expected a point beyond the curve's peak to be outside")
	}
}
