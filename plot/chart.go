package plot

import (
	"log"

	"seehuhn.de/go/geom/vec"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
)

// Chart holds the streamgraph of one canvas along with its tooltip.
type Chart struct {
	cfg     Config
	cat     *backend.Catalog
	scene   Scene
	records []backend.Record
	tooltip *Tooltip
	hover   HoverTracker
	diff    SceneDiff
}

// NewChart returns an empty chart for the series in cat.
func NewChart(cat *backend.Catalog, cfg Config) *Chart {
	if cfg.DateField == "" {
		cfg.DateField = backend.DefaultDateField
	}
	return &Chart{
		cfg:   cfg,
		cat:   cat,
		scene: Scene{Config: cfg},
	}
}

// Config returns the chart's configuration.
func (c *Chart) Config() Config {
	return c.cfg
}

// Catalog returns the chart's series.
func (c *Chart) Catalog() *backend.Catalog {
	return c.cat
}

// Render lays out rows and reports whether anything was drawn. Empty input
// leaves the previous drawing untouched.
func (c *Chart) Render(rows []backend.RawRow) bool {
	if len(rows) == 0 {
		return false
	}
	log.Printf("rendering chart with %d rows", len(rows))
	return c.RenderRecords(backend.NormalizeWith(rows, c.cat, c.cfg.DateField))
}

// RenderRecords lays out already normalized records.
func (c *Chart) RenderRecords(records []backend.Record) bool {
	if len(records) == 0 {
		return false
	}
	c.records = records
	cfg := c.cfg
	layers := Stack(records, c.cat)
	lo, hi, _ := Extent(layers)
	ts := NewTimeScale(records, cfg.InnerWidth())
	vs := NewLinearScale(lo, hi, cfg.InnerHeight(), 0)
	c.scene.Time, c.scene.Value = ts, vs
	c.scene.AxisY = cfg.InnerHeight() + cfg.AxisOffset

	names := c.cat.Names()
	c.diff.Layers = c.scene.Layers.Reconcile(names, func(name string, shape *LayerShape, i int) {
		pts := make([]AreaPoint, 0, len(records))
		for _, p := range layers[i].Points {
			if !p.Record.Valid {
				continue
			}
			pts = append(pts, AreaPoint{
				X:  ts.Map(p.Record.Timestamp),
				Y0: vs.Map(p.Baseline),
				Y1: vs.Map(p.Top),
			})
		}
		shape.Series = name
		shape.Color = c.cat.At(i).Color
		shape.Points = pts
		shape.setPath(AreaPath(pts))
	})

	ticks := MonthTicks(ts)
	keys := make([]int64, len(ticks))
	for i, t := range ticks {
		keys[i] = t.Time.UnixMilli()
	}
	c.diff.Ticks = c.scene.Ticks.Reconcile(keys, func(_ int64, tick *AxisTick, i int) {
		*tick = ticks[i]
	})

	order := LegendOrder(c.cat)
	c.scene.LegendOrigin = LegendOrigin(cfg, len(order))
	c.diff.Legend = c.scene.Legend.Reconcile(order, func(name string, item *LegendItem, i int) {
		item.Series = name
		item.Color = c.cat.Color(name)
		item.Y = float64(i) * cfg.LegendItemHeight
	})

	if c.tooltip != nil {
		c.tooltip.Refresh(records, c.cat)
	}
	return true
}

// Scene returns the retained drawing state.
func (c *Chart) Scene() *Scene {
	return &c.scene
}

// Records returns the records of the last render.
func (c *Chart) Records() []backend.Record {
	return c.records
}

// LastDiff reports what the last render changed.
func (c *Chart) LastDiff() SceneDiff {
	return c.diff
}

// Tooltip returns the tooltip, or nil before the first hover.
func (c *Chart) Tooltip() *Tooltip {
	return c.tooltip
}

// Dispatch feeds ev to the tooltip and reports whether it changed.
func (c *Chart) Dispatch(ev PointerEvent) bool {
	if c.tooltip == nil {
		if ev.Kind != Enter {
			return false
		}
		c.tooltip = newTooltip(c.cfg.Tooltip)
	}
	return c.tooltip.Handle(ev, c.records, c.cat)
}

// Pointer reports that the pointer is at the canvas position (x, y) and
// reports whether the tooltip changed.
func (c *Chart) Pointer(x, y float64) bool {
	pos := vec.Vec2{X: x, Y: y}
	series, hit := "", false
	if l, ok := c.scene.LayerAt(x, y); ok {
		series, hit = l.Series, true
	}
	return c.dispatchAll(c.hover.Update(series, hit, pos))
}

// PointerLeft reports that the pointer left the canvas.
func (c *Chart) PointerLeft() bool {
	return c.dispatchAll(c.hover.Exit(vec.Vec2{}))
}

// Hovered returns the series under the pointer.
func (c *Chart) Hovered() (string, bool) {
	return c.hover.Hovered()
}

func (c *Chart) dispatchAll(events []PointerEvent) bool {
	changed := false
	for _, ev := range events {
		if c.Dispatch(ev) {
			changed = true
		}
	}
	return changed
}
