package plot

import (
	"image/color"

	"seehuhn.de/go/geom/vec"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
)

// LegendItem is one swatch and label. Y is relative to the legend origin.
type LegendItem struct {
	Series string
	Color  color.NRGBA
	Y      float64
}

// LegendOrder returns the catalog's series names from the top of the stack
// to the bottom, which is the reverse of the stacking order.
func LegendOrder(cat *backend.Catalog) []string {
	names := cat.Names()
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// LegendOrigin places the legend to the right of the plot area, centred
// vertically on it.
func LegendOrigin(cfg Config, items int) vec.Vec2 {
	height := float64(items) * cfg.LegendItemHeight
	return vec.Vec2{
		X: cfg.Margin.Left + cfg.InnerWidth() + cfg.LegendGap,
		Y: cfg.Margin.Top + (cfg.InnerHeight()-height)/2,
	}
}
