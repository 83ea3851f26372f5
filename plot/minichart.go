package plot

import (
	"image/color"
	"strconv"

	"seehuhn.de/go/geom/rect"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
)

// Bar is one bar of the mini chart in chart-area coordinates, which
// exclude the chart margin.
type Bar struct {
	Label string
	Value float64
	X, Y  float64
	// Width and Height are never negative.
	Width, Height float64
}

// Rect returns the bar's bounds with y growing downwards.
func (b Bar) Rect() rect.Rect {
	return rect.Rect{LLx: b.X, LLy: b.Y, URx: b.X + b.Width, URy: b.Y + b.Height}
}

// Tick is one axis mark of the mini chart. Pos is the position along the
// axis in chart-area coordinates.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// MiniChart is the bar chart of a single series over all records.
type MiniChart struct {
	Series string
	Color  color.NRGBA
	// Width and Height are the size of the chart area inside Margin.
	Width, Height float64
	Margin        Margin
	Bars          []Bar
	XTicks        []Tick
	YTicks        []Tick
	// Max is the upper end of the value axis.
	Max float64
}

// NewMiniChart lays out one bar per record showing the value of series.
func NewMiniChart(records []backend.Record, series string, c color.NRGBA, cfg TooltipConfig) *MiniChart {
	w, h := cfg.InnerWidth(), cfg.InnerHeight()
	mc := &MiniChart{
		Series: series,
		Color:  c,
		Width:  w,
		Height: h,
		Margin: cfg.ChartMargin,
	}
	for _, rec := range records {
		mc.Max = max(mc.Max, rec.Value(series))
	}
	top := mc.Max
	if top <= 0 {
		top = 1
	}
	y := LinearScale{DomainMin: 0, DomainMax: top, RangeMin: h, RangeMax: 0}
	band := NewBandScale(len(records), 0, w, cfg.BandPadding)
	bw := band.Bandwidth()
	mc.Bars = make([]Bar, len(records))
	mc.XTicks = make([]Tick, len(records))
	for i, rec := range records {
		label := "?"
		if rec.Valid {
			label = MonthLabel(rec.Timestamp)
		}
		v := rec.Value(series)
		vy := y.Map(max(v, 0))
		x := band.Position(i)
		mc.Bars[i] = Bar{
			Label:  label,
			Value:  v,
			X:      x,
			Y:      vy,
			Width:  bw,
			Height: h - vy,
		}
		mc.XTicks[i] = Tick{Pos: x + bw/2, Label: label}
	}
	for _, v := range y.Ticks(cfg.YTicks) {
		mc.YTicks = append(mc.YTicks, Tick{
			Value: v,
			Pos:   y.Map(v),
			Label: strconv.FormatFloat(v, 'f', -1, 64),
		})
	}
	return mc
}
