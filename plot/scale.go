package plot

import (
	"math"
	"time"

	"golang.org/x/exp/constraints"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
)

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// degenerateSpan is added on both sides of a time domain that collapses
// to a single instant.
const degenerateSpan = 12 * time.Hour

// TimeScale maps instants linearly onto a range.
type TimeScale struct {
	Start, End         time.Time
	RangeMin, RangeMax float64
}

// NewTimeScale spans the valid timestamps of records onto [0, width].
// Records with invalid timestamps do not contribute to the domain. A
// domain without extent is widened so that the scale stays finite.
func NewTimeScale(records []backend.Record, width float64) TimeScale {
	start, end, ok := backend.Domain(records)
	if !ok {
		start = time.Unix(0, 0).UTC()
		end = start
	}
	if !end.After(start) {
		start, end = start.Add(-degenerateSpan), end.Add(degenerateSpan)
	}
	return TimeScale{
		Start:    start,
		End:      end,
		RangeMax: width,
	}
}

// Map returns the range position of t.
func (s TimeScale) Map(t time.Time) float64 {
	span := float64(s.End.Sub(s.Start))
	if span <= 0 {
		return (s.RangeMin + s.RangeMax) / 2
	}
	return s.RangeMin + float64(t.Sub(s.Start))/span*(s.RangeMax-s.RangeMin)
}

// LinearScale maps a numeric domain linearly onto a range.
type LinearScale struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float64
}

// NewLinearScale builds a scale, widening a domain without extent by half
// a unit on each side.
func NewLinearScale(domainMin, domainMax, rangeMin, rangeMax float64) LinearScale {
	if domainMin > domainMax {
		domainMin, domainMax = domainMax, domainMin
	}
	if domainMin == domainMax {
		domainMin -= 0.5
		domainMax += 0.5
	}
	return LinearScale{
		DomainMin: domainMin,
		DomainMax: domainMax,
		RangeMin:  rangeMin,
		RangeMax:  rangeMax,
	}
}

// Map returns the range position of v.
func (s LinearScale) Map(v float64) float64 {
	return s.RangeMin + (v-s.DomainMin)/(s.DomainMax-s.DomainMin)*(s.RangeMax-s.RangeMin)
}

// Ticks returns roughly count evenly spaced, human friendly values inside
// the domain.
func (s LinearScale) Ticks(count int) []float64 {
	return Ticks(s.DomainMin, s.DomainMax, count)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec picks a step of 1, 2 or 5 times a power of ten. Ticks are
// i*inc for i in [i1, i2], or i/-inc when inc is negative, which keeps
// small steps exact.
func tickSpec(start, stop float64, count float64) (i1, i2, inc float64) {
	step := (stop - start) / max(0, count)
	power := floor(math.Log10(step))
	e := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}
	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// Ticks returns nice tick values between start and stop inclusive.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) || math.IsInf(start, 0) || math.IsInf(stop, 0) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, float64(count))
	if i2 < i1 {
		return nil
	}
	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := range ticks {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
	}
	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// BandScale divides a range into equal bands, one per domain entry, with
// padding between and around them.
type BandScale struct {
	Count              int
	RangeMin, RangeMax float64
	// PaddingInner and PaddingOuter are fractions of the step between bands.
	PaddingInner, PaddingOuter float64
	// Align positions the bands within leftover space; 0.5 centres them.
	Align float64
}

// NewBandScale returns a centred band scale with equal inner and outer
// padding.
func NewBandScale(count int, rangeMin, rangeMax, padding float64) BandScale {
	padding = clamp(padding, 0, 1)
	return BandScale{
		Count:        count,
		RangeMin:     rangeMin,
		RangeMax:     rangeMax,
		PaddingInner: padding,
		PaddingOuter: padding,
		Align:        0.5,
	}
}

// Step is the distance between the starts of adjacent bands.
func (b BandScale) Step() float64 {
	n := float64(b.Count)
	return (b.RangeMax - b.RangeMin) / max(1, n-b.PaddingInner+b.PaddingOuter*2)
}

// Bandwidth is the width of every band.
func (b BandScale) Bandwidth() float64 {
	return b.Step() * (1 - b.PaddingInner)
}

// Position returns the start of band i.
func (b BandScale) Position(i int) float64 {
	step := b.Step()
	n := float64(b.Count)
	start := b.RangeMin + (b.RangeMax-b.RangeMin-step*(n-b.PaddingInner))*b.Align
	return start + step*float64(i)
}
