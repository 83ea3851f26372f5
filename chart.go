package main

import (
	"image"
	"strconv"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
	"git.sr.ht/~whereswaldon/streamgraph/plot"
)

// StreamChart draws a plot.Chart and feeds it pointer input.
type StreamChart struct {
	chart *plot.Chart
}

func NewStreamChart(chart *plot.Chart) *StreamChart {
	return &StreamChart{chart: chart}
}

// Render replaces the charted rows. Empty rows keep the current drawing.
func (c *StreamChart) Render(rows []backend.RawRow) {
	c.chart.Render(rows)
}

// Initialized reports whether anything has been rendered yet.
func (c *StreamChart) Initialized() bool {
	return len(c.chart.Records()) > 0
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

// toPx converts the canvas point origin+p in Dp to pixels.
func toPx(p, origin vec.Vec2, pxPerDp float32) f32.Point {
	return f32.Pt(float32(p.X+origin.X)*pxPerDp, float32(p.Y+origin.Y)*pxPerDp)
}

// toCanvas converts a pixel position to canvas Dp.
func toCanvas(p f32.Point, pxPerDp float32) vec.Vec2 {
	if pxPerDp == 0 {
		pxPerDp = 1
	}
	return vec.Vec2{X: float64(p.X / pxPerDp), Y: float64(p.Y / pxPerDp)}
}

// clipPath converts geometry in Dp, relative to origin, to a Gio path.
func clipPath(ops *op.Ops, data *path.Data, origin vec.Vec2, pxPerDp float32) clip.PathSpec {
	var p clip.Path
	p.Begin(ops)
	i := 0
	pt := func() f32.Point {
		v := toPx(data.Coords[i], origin, pxPerDp)
		i++
		return v
	}
	for _, cmd := range data.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			p.MoveTo(pt())
		case path.CmdLineTo:
			p.LineTo(pt())
		case path.CmdQuadTo:
			ctrl := pt()
			p.QuadTo(ctrl, pt())
		case path.CmdCubeTo:
			c0 := pt()
			c1 := pt()
			p.CubeTo(c0, c1, pt())
		case path.CmdClose:
			p.Close()
		}
	}
	return p.End()
}

// Update processes pointer input.
func (c *StreamChart) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Enter, pointer.Move:
			pos := toCanvas(e.Position, gtx.Metric.PxPerDp)
			c.chart.Pointer(pos.X, pos.Y)
		case pointer.Leave, pointer.Cancel:
			c.chart.PointerLeft()
		}
	}
}

// drawLabel lays out l so that the point (ax, ay) of its box, given as
// fractions of its size, lands on at.
func drawLabel(gtx C, l material.LabelStyle, at image.Point, ax, ay float32) {
	gtx.Constraints.Min = image.Point{}
	dims, call := rec(gtx, l.Layout)
	off := at.Sub(image.Pt(int(ax*float32(dims.Size.X)), int(ay*float32(dims.Size.Y))))
	defer op.Offset(off).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func (c *StreamChart) Layout(gtx C, th *material.Theme) D {
	cfg := c.chart.Config()
	scene := c.chart.Scene()
	scale := gtx.Metric.PxPerDp
	size := image.Pt(gtx.Dp(unit.Dp(cfg.Width)), gtx.Dp(unit.Dp(cfg.Height)))

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	paint.Fill(gtx.Ops, white)
	event.Op(gtx.Ops, c)
	if _, ok := c.chart.Hovered(); ok {
		pointer.CursorPointer.Add(gtx.Ops)
	}
	origin := cfg.PlotOrigin()
	scene.Layers.Each(func(_ string, l *plot.LayerShape) bool {
		paint.FillShape(gtx.Ops, l.Color, clip.Outline{Path: clipPath(gtx.Ops, l.Path, origin, scale)}.Op())
		return true
	})
	c.layoutAxis(gtx, th, scene)
	c.layoutLegend(gtx, th, scene)
	area.Pop()

	if tip := c.chart.Tooltip(); tip != nil && tip.Visible() && tip.Mini != nil {
		op.Defer(gtx.Ops, c.recordTooltip(gtx, th, tip))
	}
	return D{Size: size}
}

func (c *StreamChart) layoutAxis(gtx C, th *material.Theme, scene *plot.Scene) {
	cfg := scene.Config
	origin := cfg.PlotOrigin()
	y := gtx.Dp(unit.Dp(origin.Y + scene.AxisY))
	left := gtx.Dp(unit.Dp(origin.X))
	right := gtx.Dp(unit.Dp(origin.X + cfg.InnerWidth()))
	oneDp := max(gtx.Dp(1), 1)
	tickLen := gtx.Dp(6)
	paint.FillShape(gtx.Ops, axisColor, clip.Rect{
		Min: image.Pt(left, y),
		Max: image.Pt(right+oneDp, y+oneDp),
	}.Op())
	scene.Ticks.Each(func(_ int64, tick *plot.AxisTick) bool {
		x := gtx.Dp(unit.Dp(origin.X + tick.X))
		paint.FillShape(gtx.Ops, axisColor, clip.Rect{
			Min: image.Pt(x, y),
			Max: image.Pt(x+oneDp, y+tickLen),
		}.Op())
		l := material.Caption(th, tick.Label)
		l.Color = axisColor
		drawLabel(gtx, l, image.Pt(x, y+tickLen+gtx.Dp(2)), 0.5, 0)
		return true
	})
}

func (c *StreamChart) layoutLegend(gtx C, th *material.Theme, scene *plot.Scene) {
	cfg := scene.Config
	sw := gtx.Dp(unit.Dp(cfg.LegendSwatch))
	scene.Legend.Each(func(_ string, item *plot.LegendItem) bool {
		at := toPx(vec.Vec2{Y: item.Y}, scene.LegendOrigin, gtx.Metric.PxPerDp).Round()
		paint.FillShape(gtx.Ops, item.Color, clip.Rect{Min: at, Max: at.Add(image.Pt(sw, sw))}.Op())
		labelAt := toPx(cfg.LegendLabel, vec.Vec2{X: scene.LegendOrigin.X, Y: scene.LegendOrigin.Y + item.Y}, gtx.Metric.PxPerDp).Round()
		l := material.Caption(th, item.Series)
		l.Color = black
		// The label's reference point is its baseline, roughly the bottom
		// of its box.
		drawLabel(gtx, l, labelAt, 0, 0.8)
		return true
	})
}

// recordTooltip records the tooltip panel at its position so that it can
// be drawn above everything else.
func (c *StreamChart) recordTooltip(gtx C, th *material.Theme, tip *plot.Tooltip) op.CallOp {
	cfg := c.chart.Config().Tooltip
	macro := op.Record(gtx.Ops)
	pos := toPx(tip.Position, vec.Vec2{}, gtx.Metric.PxPerDp).Round()
	stack := op.Offset(pos).Push(gtx.Ops)
	panel := image.Pt(
		gtx.Dp(unit.Dp(cfg.PanelWidth+2*cfg.Padding)),
		gtx.Dp(unit.Dp(cfg.PanelHeight+2*cfg.Padding)),
	)
	gtx.Constraints = layout.Exact(panel)
	component.Shadow(0, 3).Layout(gtx)
	widget.Border{Color: panelBorder, Width: 1}.Layout(gtx, func(gtx C) D {
		paint.FillShape(gtx.Ops, white, clip.Rect{Max: gtx.Constraints.Min}.Op())
		return layout.UniformInset(unit.Dp(cfg.Padding)).Layout(gtx, func(gtx C) D {
			layoutMiniChart(gtx, th, tip.Mini)
			return D{Size: gtx.Constraints.Max}
		})
	})
	stack.Pop()
	return macro.Stop()
}

func layoutMiniChart(gtx C, th *material.Theme, mini *plot.MiniChart) {
	origin := vec.Vec2{X: mini.Margin.Left, Y: mini.Margin.Top}
	scale := gtx.Metric.PxPerDp
	for _, bar := range mini.Bars {
		r := bar.Rect()
		paint.FillShape(gtx.Ops, mini.Color, clip.Rect{
			Min: toPx(vec.Vec2{X: r.LLx, Y: r.LLy}, origin, scale).Round(),
			Max: toPx(vec.Vec2{X: r.URx, Y: r.URy}, origin, scale).Round(),
		}.Op())
	}
	oneDp := max(gtx.Dp(1), 1)
	bottomLeft := toPx(vec.Vec2{Y: mini.Height}, origin, scale).Round()
	bottomRight := toPx(vec.Vec2{X: mini.Width, Y: mini.Height}, origin, scale).Round()
	topLeft := toPx(vec.Vec2{}, origin, scale).Round()
	paint.FillShape(gtx.Ops, axisColor, clip.Rect{Min: bottomLeft, Max: bottomRight.Add(image.Pt(0, oneDp))}.Op())
	paint.FillShape(gtx.Ops, axisColor, clip.Rect{Min: topLeft.Sub(image.Pt(oneDp, 0)), Max: bottomLeft}.Op())
	for _, tick := range mini.XTicks {
		at := toPx(vec.Vec2{X: tick.Pos, Y: mini.Height}, origin, scale).Round()
		l := material.Caption(th, tick.Label)
		l.Color = axisColor
		drawLabel(gtx, l, at.Add(image.Pt(0, gtx.Dp(3))), 0.5, 0)
	}
	for _, tick := range mini.YTicks {
		at := toPx(vec.Vec2{Y: tick.Pos}, origin, scale).Round()
		l := material.Caption(th, tick.Label)
		l.Color = axisColor
		drawLabel(gtx, l, at.Sub(image.Pt(gtx.Dp(3), 0)), 1, 0.5)
	}
	l := material.Caption(th, mini.Series+" (max "+strconv.FormatFloat(mini.Max, 'f', -1, 64)+")")
	l.Color = black
	drawLabel(gtx, l, toPx(vec.Vec2{}, vec.Vec2{X: origin.X}, scale).Round(), 0, 0)
}
