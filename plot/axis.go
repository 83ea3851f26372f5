package plot

import "time"

// maxTicks bounds the number of month ticks drawn for very long domains.
const maxTicks = 600

// AxisTick is one labelled mark on the time axis.
type AxisTick struct {
	Time  time.Time
	X     float64
	Label string
}

// MonthLabel formats t as an abbreviated month name.
func MonthLabel(t time.Time) string {
	return t.Format("Jan")
}

// MonthTicks returns a tick at the start of every month within the
// scale's domain.
func MonthTicks(s TimeScale) []AxisTick {
	start := s.Start.UTC()
	t := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	if t.Before(start) {
		t = t.AddDate(0, 1, 0)
	}
	var ticks []AxisTick
	for !t.After(s.End) && len(ticks) < maxTicks {
		ticks = append(ticks, AxisTick{
			Time:  t,
			X:     s.Map(t),
			Label: MonthLabel(t),
		})
		t = t.AddDate(0, 1, 0)
	}
	return ticks
}
