// Package snapshot paints a chart scene into an image without a window,
// for export and for tests.
package snapshot

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"git.sr.ht/~whereswaldon/streamgraph/plot"
)

// Options control rasterization.
type Options struct {
	// Scale is the number of pixels per canvas unit. Zero means 1.
	Scale float64
}

var (
	background  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	axisColor   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	textColor   = color.NRGBA{A: 0xff}
	panelBorder = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	panelShadow = color.NRGBA{A: 0x66}
)

// shadowOffset displaces the tooltip's shadow, in canvas units.
const shadowOffset = 3

type painter struct {
	img   *image.RGBA
	scale float64
	face  font.Face
}

// Render paints scene and, when it is visible, the tooltip.
func Render(scene *plot.Scene, tip *plot.Tooltip, opts Options) *image.RGBA {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	cfg := scene.Config
	w, h := int(cfg.Width*scale), int(cfg.Height*scale)
	p := &painter{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: scale,
		face:  basicfont.Face7x13,
	}
	draw.Draw(p.img, p.img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	origin := cfg.PlotOrigin()
	scene.Layers.Each(func(_ string, l *plot.LayerShape) bool {
		p.fillPath(l.Path, origin, l.Color)
		return true
	})
	p.axis(scene)
	p.legend(scene)
	if tip != nil && tip.Visible() && tip.Mini != nil {
		p.tooltip(tip, cfg.Tooltip)
	}
	return p.img
}

func (p *painter) px(v vec.Vec2) (float32, float32) {
	return float32(v.X * p.scale), float32(v.Y * p.scale)
}

func (p *painter) pt(v vec.Vec2) image.Point {
	x, y := p.px(v)
	return image.Pt(int(x+0.5), int(y+0.5))
}

// fillPath fills data, offset by origin, with the nonzero rule.
func (p *painter) fillPath(data *path.Data, origin vec.Vec2, c color.Color) {
	if data == nil || len(data.Cmds) == 0 {
		return
	}
	b := p.img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	i := 0
	next := func() (float32, float32) {
		x, y := p.px(data.Coords[i].Add(origin))
		i++
		return x, y
	}
	for _, cmd := range data.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			r.MoveTo(next())
		case path.CmdLineTo:
			r.LineTo(next())
		case path.CmdQuadTo:
			bx, by := next()
			cx, cy := next()
			r.QuadTo(bx, by, cx, cy)
		case path.CmdCubeTo:
			bx, by := next()
			cx, cy := next()
			dx, dy := next()
			r.CubeTo(bx, by, cx, cy, dx, dy)
		case path.CmdClose:
			r.ClosePath()
		}
	}
	r.Draw(p.img, b, image.NewUniform(c), image.Point{})
}

// rect fills the canvas rectangle from min to max.
func (p *painter) rect(min, max vec.Vec2, c color.Color) {
	r := image.Rectangle{Min: p.pt(min), Max: p.pt(max)}.Canon()
	if r.Dx() == 0 {
		r.Max.X++
	}
	if r.Dy() == 0 {
		r.Max.Y++
	}
	draw.Draw(p.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// text draws s with the point (ax, 0) of its width at the baseline position
// at, where ax is a fraction of the text width.
func (p *painter) text(s string, at vec.Vec2, ax float64, c color.Color) {
	d := &font.Drawer{Dst: p.img, Src: image.NewUniform(c), Face: p.face}
	width := d.MeasureString(s)
	pos := p.pt(at)
	d.Dot = fixed.Point26_6{
		X: fixed.I(pos.X) - fixed.Int26_6(float64(width)*ax),
		Y: fixed.I(pos.Y),
	}
	d.DrawString(s)
}

func (p *painter) ascent() float64 {
	return float64(p.face.Metrics().Ascent.Ceil()) / p.scale
}

func (p *painter) axis(scene *plot.Scene) {
	cfg := scene.Config
	origin := cfg.PlotOrigin()
	y := origin.Y + scene.AxisY
	p.rect(vec.Vec2{X: origin.X, Y: y}, vec.Vec2{X: origin.X + cfg.InnerWidth(), Y: y}, axisColor)
	scene.Ticks.Each(func(_ int64, tick *plot.AxisTick) bool {
		x := origin.X + tick.X
		p.rect(vec.Vec2{X: x, Y: y}, vec.Vec2{X: x, Y: y + 6}, axisColor)
		p.text(tick.Label, vec.Vec2{X: x, Y: y + 8 + p.ascent()}, 0.5, axisColor)
		return true
	})
}

func (p *painter) legend(scene *plot.Scene) {
	cfg := scene.Config
	scene.Legend.Each(func(_ string, item *plot.LegendItem) bool {
		at := scene.LegendOrigin.Add(vec.Vec2{Y: item.Y})
		p.rect(at, at.Add(vec.Vec2{X: cfg.LegendSwatch, Y: cfg.LegendSwatch}), item.Color)
		p.text(item.Series, at.Add(cfg.LegendLabel), 0, textColor)
		return true
	})
}

func (p *painter) tooltip(tip *plot.Tooltip, cfg plot.TooltipConfig) {
	size := vec.Vec2{X: cfg.PanelWidth + 2*cfg.Padding, Y: cfg.PanelHeight + 2*cfg.Padding}
	pos := tip.Position
	shadow := vec.Vec2{X: shadowOffset, Y: shadowOffset}
	p.rect(pos.Add(shadow), pos.Add(size).Add(shadow), panelShadow)
	p.rect(pos, pos.Add(size), panelBorder)
	one := vec.Vec2{X: 1 / p.scale, Y: 1 / p.scale}
	p.rect(pos.Add(one), pos.Add(size).Sub(one), background)

	mini := tip.Mini
	origin := pos.Add(vec.Vec2{X: cfg.Padding + mini.Margin.Left, Y: cfg.Padding + mini.Margin.Top})
	for _, bar := range mini.Bars {
		if bar.Height <= 0 || bar.Width <= 0 {
			continue
		}
		r := bar.Rect()
		p.rect(origin.Add(vec.Vec2{X: r.LLx, Y: r.LLy}), origin.Add(vec.Vec2{X: r.URx, Y: r.URy}), mini.Color)
	}
	p.rect(origin.Add(vec.Vec2{Y: mini.Height}), origin.Add(vec.Vec2{X: mini.Width, Y: mini.Height}), axisColor)
	p.rect(origin, origin.Add(vec.Vec2{Y: mini.Height}), axisColor)
	for _, tick := range mini.XTicks {
		p.text(tick.Label, origin.Add(vec.Vec2{X: tick.Pos, Y: mini.Height + 3 + p.ascent()}), 0.5, axisColor)
	}
	for _, tick := range mini.YTicks {
		p.rect(origin.Add(vec.Vec2{X: -6, Y: tick.Pos}), origin.Add(vec.Vec2{Y: tick.Pos}), axisColor)
		p.text(tick.Label, origin.Add(vec.Vec2{X: -8, Y: tick.Pos + p.ascent()/2}), 1, axisColor)
	}
	p.text(mini.Series, origin.Add(vec.Vec2{Y: -4}), 0, textColor)
}
