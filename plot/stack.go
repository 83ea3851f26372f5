package plot

import (
	"git.sr.ht/~whereswaldon/streamgraph/backend"
)

// StackPoint is one layer's vertical extent at one record.
type StackPoint struct {
	Record   backend.Record
	Baseline float64
	Top      float64
}

// StackedLayer is the band occupied by one series across all records.
type StackedLayer struct {
	Series string
	Points []StackPoint
}

// Stack lays out the catalog's series on top of each other in catalog
// order, shifting the whole stack at every record so as to minimize the
// overall wiggle of the layers.
//
// The shift follows the weighted wiggle recurrence: the stack starts at
// zero, and the bottom moves between consecutive records by the negated
// value-weighted mean of the slopes of every layer's midline. Records
// where all values are zero keep the previous shift. At every record each
// layer's top minus its baseline equals its value, and each layer starts
// where the previous one ends.
func Stack(records []backend.Record, cat *backend.Catalog) []StackedLayer {
	n, m := cat.Len(), len(records)
	layers := make([]StackedLayer, n)
	for i := range layers {
		layers[i] = StackedLayer{
			Series: cat.At(i).Name,
			Points: make([]StackPoint, m),
		}
	}
	if n == 0 || m == 0 {
		return layers
	}
	offsets := wiggle(records, cat)
	for j, rec := range records {
		base := offsets[j]
		for i := range layers {
			top := base + rec.Values[layers[i].Series]
			layers[i].Points[j] = StackPoint{
				Record:   rec,
				Baseline: base,
				Top:      top,
			}
			base = top
		}
	}
	return layers
}

// wiggle computes the baseline of the bottom layer at every record.
func wiggle(records []backend.Record, cat *backend.Catalog) []float64 {
	offsets := make([]float64, len(records))
	y := 0.0
	for j := 1; j < len(records); j++ {
		var total, weighted float64
		// below accumulates the slope of every layer underneath the current
		// one.
		below := 0.0
		for i := 0; i < cat.Len(); i++ {
			name := cat.At(i).Name
			cur := records[j].Values[name]
			prev := records[j-1].Values[name]
			delta := cur - prev
			slope := delta/2 + below
			below += delta
			total += cur
			weighted += slope * cur
		}
		offsets[j-1] = y
		if total != 0 {
			y -= weighted / total
		}
	}
	offsets[len(records)-1] = y
	return offsets
}

// Extent returns the lowest baseline and the highest top across all
// layers. The ok return is false if there are no points.
func Extent(layers []StackedLayer) (lo, hi float64, ok bool) {
	for _, l := range layers {
		for _, p := range l.Points {
			if !ok {
				lo, hi, ok = min(p.Baseline, p.Top), max(p.Baseline, p.Top), true
				continue
			}
			lo = min(lo, p.Baseline, p.Top)
			hi = max(hi, p.Baseline, p.Top)
		}
	}
	return lo, hi, ok
}
