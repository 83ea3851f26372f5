package backend

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDateField is the column holding each row's date.
const DefaultDateField = "Date"

// RawRow is one untyped input row, mapping column names to values.
type RawRow map[string]any

// Record is a normalized input row.
type Record struct {
	// Timestamp is the row's date in UTC. It is only meaningful if Valid
	// is true.
	Timestamp time.Time
	Valid     bool
	// Values holds a value for every series in the catalog the record was
	// normalized against.
	Values map[string]float64
}

// Value returns the record's value for the named series.
func (r Record) Value(series string) float64 {
	return r.Values[series]
}

// dateLayouts are tried in order when parsing string dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006-01",
	"01/02/2006",
	"1/2/2006",
	"Jan 2006",
	"January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate interprets v as a point in time. Strings are matched against
// a small set of common layouts and interpreted in UTC.
func ParseDate(v any) (time.Time, bool) {
	switch v := v.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v.UTC(), true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return ParseDate(*v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t.UTC(), true
			}
		}
	case []byte:
		return ParseDate(string(v))
	}
	return time.Time{}, false
}

// Coerce converts v to a finite number. Missing, non-numeric, NaN and
// infinite inputs become zero.
func Coerce(v any) float64 {
	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case bool:
		if v {
			f = 1
		}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case []byte:
		return Coerce(string(v))
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Normalize converts raw rows into records using the default date field.
func Normalize(rows []RawRow, cat *Catalog) []Record {
	return NormalizeWith(rows, cat, DefaultDateField)
}

// NormalizeWith converts raw rows into records, reading dates from the
// named field. The output has the same length and order as the input;
// rows with unparsable dates are kept with Valid set to false.
func NormalizeWith(rows []RawRow, cat *Catalog, dateField string) []Record {
	out := make([]Record, len(rows))
	for i, row := range rows {
		ts, ok := ParseDate(row[dateField])
		rec := Record{
			Timestamp: ts,
			Valid:     ok,
			Values:    make(map[string]float64, cat.Len()),
		}
		for _, s := range cat.series {
			rec.Values[s.Name] = Coerce(row[s.Name])
		}
		out[i] = rec
	}
	return out
}

// Domain returns the earliest and latest valid timestamps among the
// records. The ok return is false if no record has a valid timestamp.
func Domain(records []Record) (first, last time.Time, ok bool) {
	for _, r := range records {
		if !r.Valid {
			continue
		}
		if !ok {
			first, last, ok = r.Timestamp, r.Timestamp, true
			continue
		}
		if r.Timestamp.Before(first) {
			first = r.Timestamp
		}
		if r.Timestamp.After(last) {
			last = r.Timestamp
		}
	}
	return first, last, ok
}
