package plot

import (
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Diff counts what a reconciliation did to a collection.
type Diff struct {
	Created, Updated, Removed int
}

// Collection is an ordered set of elements identified by key. Reconcile
// updates elements in place, so pointers returned by Get stay valid for
// as long as their key survives.
type Collection[K comparable, E any] struct {
	order []K
	items map[K]*E
}

// Reconcile makes the collection hold exactly keys, in that order. update
// is called with every element, whether it was just created or already
// present, along with its index in keys. Duplicate keys are ignored after
// their first occurrence.
func (c *Collection[K, E]) Reconcile(keys []K, update func(key K, elem *E, index int)) Diff {
	var d Diff
	if c.items == nil {
		c.items = make(map[K]*E)
	}
	seen := make(map[K]struct{}, len(keys))
	order := make([]K, 0, len(keys))
	for i, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		e, ok := c.items[k]
		if ok {
			d.Updated++
		} else {
			e = new(E)
			c.items[k] = e
			d.Created++
		}
		update(k, e, i)
		order = append(order, k)
	}
	for k := range c.items {
		if _, ok := seen[k]; !ok {
			delete(c.items, k)
			d.Removed++
		}
	}
	c.order = order
	return d
}

// Get returns the element for key.
func (c *Collection[K, E]) Get(key K) (*E, bool) {
	e, ok := c.items[key]
	return e, ok
}

// Len returns the number of elements.
func (c *Collection[K, E]) Len() int {
	return len(c.order)
}

// Keys returns the keys in order.
func (c *Collection[K, E]) Keys() []K {
	return append([]K(nil), c.order...)
}

// Each calls f with every element in order until f returns false.
func (c *Collection[K, E]) Each(f func(key K, elem *E) bool) {
	for _, k := range c.order {
		if !f(k, c.items[k]) {
			return
		}
	}
}

// LayerShape is the drawable area of one series.
type LayerShape struct {
	Series string
	Color  color.NRGBA
	// Path is in plot-area coordinates.
	Path   *path.Data
	Points []AreaPoint
	Bounds rect.Rect

	polys [][]vec.Vec2
}

// Contains reports whether the plot-area point pt lies inside the shape.
func (l *LayerShape) Contains(pt vec.Vec2) bool {
	if l.Path == nil || !inRect(l.Bounds, pt) {
		return false
	}
	if l.polys == nil {
		l.polys = flatten(l.Path)
	}
	return containsEvenOdd(l.polys, pt)
}

func (l *LayerShape) setPath(p *path.Data) {
	l.Path = p
	l.Bounds = bounds(p)
	l.polys = nil
}

// SceneDiff reports what the last reconciliation did to each part of the
// scene.
type SceneDiff struct {
	Layers, Ticks, Legend Diff
}

// Scene is the retained drawing state of the chart.
type Scene struct {
	Config Config
	// Layers are drawn in catalog order, so later layers are on top.
	Layers Collection[string, LayerShape]
	// Ticks are keyed by their time in Unix milliseconds.
	Ticks  Collection[int64, AxisTick]
	Legend Collection[string, LegendItem]
	// LegendOrigin is the canvas position of the first legend item.
	LegendOrigin vec.Vec2
	// AxisY is the vertical position of the time axis in plot-area
	// coordinates.
	AxisY float64
	Time  TimeScale
	Value LinearScale
}

// LayerAt returns the top-most layer containing the canvas point (x, y).
func (s *Scene) LayerAt(x, y float64) (*LayerShape, bool) {
	pt := vec.Vec2{X: x, Y: y}.Sub(s.Config.PlotOrigin())
	var hit *LayerShape
	s.Layers.Each(func(_ string, l *LayerShape) bool {
		if l.Contains(pt) {
			hit = l
		}
		return true
	})
	return hit, hit != nil
}
