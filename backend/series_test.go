package backend

import (
	"image/color"
	"slices"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	expectedNames := []string{"GPT-4", "Gemini", "PaLM-2", "Claude", "LLaMA-3.1"}
	if names := cat.Names(); !slices.Equal(names, expectedNames) {
		t.Errorf("expected names %v, got %v", expectedNames, names)
	}
	expected := color.NRGBA{R: 0x98, G: 0x4e, B: 0xa3, A: 0xff}
	if c := cat.Color("Claude"); c != expected {
		t.Errorf("expected Claude to be %v, got %v", expected, c)
	}
	if _, ok := cat.Lookup("Mistral"); ok {
		t.Errorf("expected undeclared series lookup to fail")
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(Series{Name: "a"}, Series{Name: "a"})
	if err == nil {
		t.Errorf("expected duplicate names to be rejected")
	}
	_, err = NewCatalog(Series{Name: ""})
	if err == nil {
		t.Errorf("expected empty names to be rejected")
	}
}

func TestParseHex(t *testing.T) {
	type testcase struct {
		in       string
		expected color.NRGBA
		ok       bool
	}
	for _, tc := range []testcase{
		{in: "#e41a1c", expected: color.NRGBA{R: 0xe4, G: 0x1a, B: 0x1c, A: 0xff}, ok: true},
		{in: "ff7f00", expected: color.NRGBA{R: 0xff, G: 0x7f, A: 0xff}, ok: true},
		{in: "#fff", expected: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, ok: true},
		{in: "#12345", ok: false},
		{in: "#zzzzzz", ok: false},
	} {
		c, err := ParseHex(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("%q: expected ok=%v, got err %v", tc.in, tc.ok, err)
			continue
		}
		if tc.ok && c != tc.expected {
			t.Errorf("%q: expected %v, got %v", tc.in, tc.expected, c)
		}
	}
}
