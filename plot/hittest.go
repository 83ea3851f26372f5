package plot

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// flatness is the maximum distance between a curve and the polygon
// approximating it.
const flatness = 0.25

// flatten approximates p with closed polygons, one per subpath.
func flatten(p *path.Data) [][]vec.Vec2 {
	var polys [][]vec.Vec2
	var cur []vec.Vec2
	var current vec.Vec2
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if len(cur) > 0 {
				polys = append(polys, cur)
			}
			current = p.Coords[coordIdx]
			cur = []vec.Vec2{current}
			coordIdx++
		case path.CmdLineTo:
			current = p.Coords[coordIdx]
			cur = append(cur, current)
			coordIdx++
		case path.CmdQuadTo:
			c, to := p.Coords[coordIdx], p.Coords[coordIdx+1]
			// Elevate to a cubic.
			c1 := current.Add(c.Sub(current).Mul(2.0 / 3))
			c2 := to.Add(c.Sub(to).Mul(2.0 / 3))
			cur = flattenCubic(cur, current, c1, c2, to)
			current = to
			coordIdx += 2
		case path.CmdCubeTo:
			c1, c2, to := p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2]
			cur = flattenCubic(cur, current, c1, c2, to)
			current = to
			coordIdx += 3
		case path.CmdClose:
			if len(cur) > 0 {
				polys = append(polys, cur)
				current = cur[0]
			}
			cur = nil
		}
	}
	if len(cur) > 0 {
		polys = append(polys, cur)
	}
	return polys
}

// flattenCubic appends points along the cubic Bézier p0..p3 to out,
// excluding p0. The segment count follows Wang's formula.
func flattenCubic(out []vec.Vec2, p0, p1, p2, p3 vec.Vec2) []vec.Vec2 {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)
	m := max(math.Hypot(d1.X, d1.Y), math.Hypot(d2.X, d2.Y))
	n := 1
	if m > 0 {
		n = clamp(int(ceil(math.Sqrt(3*m/(4*flatness)))), 1, 256)
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt * omt).
			Add(p1.Mul(3 * omt * omt * t)).
			Add(p2.Mul(3 * omt * t * t)).
			Add(p3.Mul(t * t * t))
		out = append(out, pt)
	}
	return out
}

// containsEvenOdd reports whether pt is inside polys under the even-odd
// fill rule.
func containsEvenOdd(polys [][]vec.Vec2, pt vec.Vec2) bool {
	inside := false
	for _, poly := range polys {
		for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
			a, b := poly[i], poly[j]
			if (a.Y > pt.Y) != (b.Y > pt.Y) {
				x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
				if pt.X < x {
					inside = !inside
				}
			}
		}
	}
	return inside
}

func inRect(r rect.Rect, pt vec.Vec2) bool {
	return pt.X >= r.LLx && pt.X <= r.URx && pt.Y >= r.LLy && pt.Y <= r.URy
}
