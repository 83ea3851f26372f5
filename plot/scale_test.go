package plot

import (
	"math"
	"testing"
	"time"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
)

func TestTicks(t *testing.T) {
	type testcase struct {
		start, stop float64
		count       int
		expected    []float64
	}
	for _, tc := range []testcase{
		{start: 0, stop: 20, count: 5, expected: []float64{0, 5, 10, 15, 20}},
		{start: 0, stop: 1, count: 5, expected: []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{start: 0, stop: 10, count: 10, expected: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{start: -3, stop: 7, count: 5, expected: []float64{-2, 0, 2, 4, 6}},
		{start: 20, stop: 0, count: 5, expected: []float64{20, 15, 10, 5, 0}},
		{start: 3, stop: 3, count: 5, expected: []float64{3}},
		{start: 0, stop: 1, count: 0, expected: nil},
	} {
		got := Ticks(tc.start, tc.stop, tc.count)
		if len(got) != len(tc.expected) {
			t.Errorf("Ticks(%v, %v, %d): expected %v, got %v", tc.start, tc.stop, tc.count, tc.expected, got)
			continue
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Errorf("Ticks(%v, %v, %d): expected %v, got %v", tc.start, tc.stop, tc.count, tc.expected, got)
				break
			}
		}
	}
}

func TestBandScale(t *testing.T) {
	b := NewBandScale(3, 0, 175, 0.25)
	step := 175 / 3.25
	if math.Abs(b.Step()-step) > 1e-9 {
		t.Errorf("expected step %f, got %f", step, b.Step())
	}
	if math.Abs(b.Bandwidth()-step*0.75) > 1e-9 {
		t.Errorf("expected bandwidth %f, got %f", step*0.75, b.Bandwidth())
	}
	for i := 0; i < 3; i++ {
		expected := step*0.25 + step*float64(i)
		if got := b.Position(i); math.Abs(got-expected) > 1e-9 {
			t.Errorf("band %d: expected position %f, got %f", i, expected, got)
		}
	}
	last := b.Position(2) + b.Bandwidth()
	if math.Abs(175-last-b.Position(0)) > 1e-9 {
		t.Errorf("expected bands centred, got %f before and %f after", b.Position(0), 175-last)
	}
}

func TestBandScaleEmpty(t *testing.T) {
	b := NewBandScale(0, 0, 100, 0.25)
	if s := b.Step(); math.IsInf(s, 0) || math.IsNaN(s) {
		t.Errorf("expected finite step, got %f", s)
	}
}

func TestTimeScaleDegenerate(t *testing.T) {
	at := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	type testcase struct {
		name    string
		records []backend.Record
	}
	for _, tc := range []testcase{
		{name: "single", records: []backend.Record{{Timestamp: at, Valid: true}}},
		{name: "repeated", records: []backend.Record{{Timestamp: at, Valid: true}, {Timestamp: at, Valid: true}}},
		{name: "none valid", records: []backend.Record{{}, {}}},
		{name: "empty"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := NewTimeScale(tc.records, 410)
			if !s.End.After(s.Start) {
				t.Fatalf("expected widened domain, got [%v, %v]", s.Start, s.End)
			}
			mid := s.Start.Add(s.End.Sub(s.Start) / 2)
			if got := s.Map(mid); got != 205 {
				t.Errorf("expected centre to map to 205, got %f", got)
			}
		})
	}
}

func TestTimeScaleSkipsInvalid(t *testing.T) {
	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := NewTimeScale([]backend.Record{{Timestamp: mar, Valid: true}, {}, {Timestamp: jan, Valid: true}}, 100)
	if !s.Start.Equal(jan) || !s.End.Equal(mar) {
		t.Errorf("expected [%v, %v], got [%v, %v]", jan, mar, s.Start, s.End)
	}
	if s.Map(jan) != 0 || s.Map(mar) != 100 {
		t.Errorf("expected domain ends to map to range ends, got %f and %f", s.Map(jan), s.Map(mar))
	}
}

func TestLinearScaleDegenerate(t *testing.T) {
	s := NewLinearScale(5, 5, 300, 0)
	if s.DomainMin != 4.5 || s.DomainMax != 5.5 {
		t.Errorf("expected [4.5, 5.5], got [%f, %f]", s.DomainMin, s.DomainMax)
	}
	if got := s.Map(5); got != 150 {
		t.Errorf("expected 150, got %f", got)
	}
}

func TestMonthTicks(t *testing.T) {
	s := TimeScale{
		Start:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		RangeMax: 100,
	}
	ticks := MonthTicks(s)
	expected := []string{"Feb", "Mar", "Apr"}
	if len(ticks) != len(expected) {
		t.Fatalf("expected %d ticks, got %d", len(expected), len(ticks))
	}
	for i, tick := range ticks {
		if tick.Label != expected[i] {
			t.Errorf("tick %d: expected %s, got %s", i, expected[i], tick.Label)
		}
		if tick.X < 0 || tick.X > 100 {
			t.Errorf("tick %d: expected position inside range, got %f", i, tick.X)
		}
	}
}
