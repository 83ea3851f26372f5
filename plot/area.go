package plot

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// AreaPoint is one vertical slice of a filled area: at X the area spans
// from Y0 (lower edge) to Y1 (upper edge).
type AreaPoint struct {
	X, Y0, Y1 float64
}

// cardinalK is the control point factor of a cardinal spline with zero
// tension.
const cardinalK = 1.0 / 6

// AreaPath returns the closed outline of the area through pts. The upper
// edge runs forward and the lower edge backward, both smoothed with a
// cardinal spline. Each edge starts and ends with a zero-length tangent.
func AreaPath(pts []AreaPoint) *path.Data {
	p := &path.Data{}
	if len(pts) == 0 {
		return p
	}
	upper := make([]vec.Vec2, len(pts))
	lower := make([]vec.Vec2, len(pts))
	for i, pt := range pts {
		upper[i] = vec.Vec2{X: pt.X, Y: pt.Y1}
		lower[len(pts)-1-i] = vec.Vec2{X: pt.X, Y: pt.Y0}
	}
	p.MoveTo(upper[0])
	cardinal(p, upper)
	p.LineTo(lower[0])
	cardinal(p, lower)
	return p.Close()
}

// cardinal appends the spline through pts to p, whose current point must
// already be pts[0]. The phantom neighbours of the end points mirror the
// adjacent point, which places the outer control points on the ends.
func cardinal(p *path.Data, pts []vec.Vec2) {
	n := len(pts)
	switch n {
	case 0, 1:
		return
	case 2:
		p.LineTo(pts[1])
		return
	}
	for i := 0; i < n-1; i++ {
		prev := pts[i+1]
		if i > 0 {
			prev = pts[i-1]
		}
		next := pts[i]
		if i+2 < n {
			next = pts[i+2]
		}
		c1 := pts[i].Add(pts[i+1].Sub(prev).Mul(cardinalK))
		c2 := pts[i+1].Sub(next.Sub(pts[i]).Mul(cardinalK))
		p.CubeTo(c1, c2, pts[i+1])
	}
}

// bounds returns the axis-aligned box around every point of p, including
// control points.
func bounds(p *path.Data) rect.Rect {
	var r rect.Rect
	for i, c := range p.Coords {
		if i == 0 {
			r = rect.Rect{LLx: c.X, LLy: c.Y, URx: c.X, URy: c.Y}
			continue
		}
		r.LLx = min(r.LLx, c.X)
		r.LLy = min(r.LLy, c.Y)
		r.URx = max(r.URx, c.X)
		r.URy = max(r.URy, c.Y)
	}
	return r
}
