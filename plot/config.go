// Package plot turns normalized records into streamgraph geometry and
// implements the hover interaction that drives the tooltip mini chart.
//
// All coordinates are logical canvas units with the origin at the top
// left and y growing downwards. Nothing in this package is safe for
// concurrent use; a Chart is meant to be driven from a single UI
// goroutine.
package plot

import (
	"seehuhn.de/go/geom/vec"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
)

// Margin is the space reserved around a drawing area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// TooltipConfig sizes the tooltip panel and its mini bar chart.
type TooltipConfig struct {
	// PanelWidth and PanelHeight size the panel's drawing surface.
	PanelWidth, PanelHeight float64
	// Padding surrounds the drawing surface inside the panel.
	Padding float64
	// ChartWidth and ChartHeight include ChartMargin.
	ChartWidth, ChartHeight float64
	ChartMargin             Margin
	// BandPadding is the fraction of each band left empty between bars.
	BandPadding float64
	YTicks      int
	// Offset is added to the pointer position to place the panel.
	Offset vec.Vec2
}

// Config describes the chart canvas.
type Config struct {
	Width, Height float64
	Margin        Margin
	// AxisOffset separates the time axis from the plot area.
	AxisOffset float64
	// LegendGap separates the legend from the plot area.
	LegendGap        float64
	LegendItemHeight float64
	LegendSwatch     float64
	LegendLabel      vec.Vec2
	DateField        string
	Tooltip          TooltipConfig
}

// DefaultConfig returns the configuration of the standard 600x500 chart.
func DefaultConfig() Config {
	return Config{
		Width:  600,
		Height: 500,
		Margin: Margin{
			Top:    100,
			Right:  170,
			Bottom: 100,
			Left:   20,
		},
		AxisOffset:       10,
		LegendGap:        20,
		LegendItemHeight: 20,
		LegendSwatch:     13,
		LegendLabel:      vec.Vec2{X: 20, Y: 10},
		DateField:        backend.DefaultDateField,
		Tooltip: TooltipConfig{
			PanelWidth:  250,
			PanelHeight: 150,
			Padding:     10,
			ChartWidth:  220,
			ChartHeight: 140,
			ChartMargin: Margin{
				Top:    15,
				Right:  10,
				Bottom: 30,
				Left:   35,
			},
			BandPadding: 0.25,
			YTicks:      5,
			Offset:      vec.Vec2{X: 10, Y: 10},
		},
	}
}

// InnerWidth is the width of the plot area.
func (c Config) InnerWidth() float64 {
	return c.Width - c.Margin.Left - c.Margin.Right
}

// InnerHeight is the height of the plot area.
func (c Config) InnerHeight() float64 {
	return c.Height - c.Margin.Top - c.Margin.Bottom
}

// PlotOrigin is the canvas position of the plot area's top left corner.
func (c Config) PlotOrigin() vec.Vec2 {
	return vec.Vec2{X: c.Margin.Left, Y: c.Margin.Top}
}

// InnerWidth is the width of the mini chart's plot area.
func (c TooltipConfig) InnerWidth() float64 {
	return c.ChartWidth - c.ChartMargin.Left - c.ChartMargin.Right
}

// InnerHeight is the height of the mini chart's plot area.
func (c TooltipConfig) InnerHeight() float64 {
	return c.ChartHeight - c.ChartMargin.Top - c.ChartMargin.Bottom
}
