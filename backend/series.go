package backend

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Series is one named data set tracked by a visualization along with
// the color used to draw it.
type Series struct {
	Name  string
	Color color.NRGBA
}

// Catalog is the fixed, ordered list of series a chart knows about. Its
// order is the stacking order. The catalog is configuration: columns in
// the input data that do not name a catalog series are ignored.
type Catalog struct {
	series []Series
	index  map[string]int
}

// NewCatalog builds a catalog from the provided series. Names must be
// unique.
func NewCatalog(series ...Series) (*Catalog, error) {
	c := &Catalog{
		series: make([]Series, 0, len(series)),
		index:  make(map[string]int, len(series)),
	}
	for _, s := range series {
		if s.Name == "" {
			return nil, fmt.Errorf("series %d has no name", len(c.series))
		}
		if _, ok := c.index[s.Name]; ok {
			return nil, fmt.Errorf("duplicate series %q", s.Name)
		}
		c.index[s.Name] = len(c.series)
		c.series = append(c.series, s)
	}
	return c, nil
}

// MustCatalog is like NewCatalog, but panics on invalid input.
func MustCatalog(series ...Series) *Catalog {
	c, err := NewCatalog(series...)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog returns the catalog of language models charted by default.
func DefaultCatalog() *Catalog {
	return MustCatalog(
		Series{Name: "GPT-4", Color: MustParseHex("#e41a1c")},
		Series{Name: "Gemini", Color: MustParseHex("#377eb8")},
		Series{Name: "PaLM-2", Color: MustParseHex("#4daf4a")},
		Series{Name: "Claude", Color: MustParseHex("#984ea3")},
		Series{Name: "LLaMA-3.1", Color: MustParseHex("#ff7f00")},
	)
}

// Len returns the number of series in the catalog.
func (c *Catalog) Len() int {
	return len(c.series)
}

// At returns the series at index i in stacking order.
func (c *Catalog) At(i int) Series {
	return c.series[i]
}

// Names returns the series names in stacking order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.series))
	for i, s := range c.series {
		out[i] = s.Name
	}
	return out
}

// Lookup finds a series by name.
func (c *Catalog) Lookup(name string) (Series, bool) {
	i, ok := c.index[name]
	if !ok {
		return Series{}, false
	}
	return c.series[i], true
}

// Color returns the color of the named series, or opaque black for names
// outside of the catalog.
func (c *Catalog) Color(name string) color.NRGBA {
	if s, ok := c.Lookup(name); ok {
		return s.Color
	}
	return color.NRGBA{A: 0xff}
}

// ParseHex parses colors of the form #rgb or #rrggbb.
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

// MustParseHex is like ParseHex, but panics on invalid input.
func MustParseHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
