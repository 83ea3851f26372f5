package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
	"git.sr.ht/~whereswaldon/streamgraph/plot"
)

const sampleCSV = `Date,GPT-4,Gemini,PaLM-2,Claude,LLaMA-3.1
2024-01-01,10,4,3,2,6
2024-02-01,20,5,3,4,6
2024-03-01,5,6,2,8,7
`

func TestHoverPosition(t *testing.T) {
	chart := plot.NewChart(backend.DefaultCatalog(), plot.DefaultConfig())
	rows, err := backend.ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("failed reading csv: %v", err)
	}
	chart.Render(rows)
	for _, name := range backend.DefaultCatalog().Names() {
		pos, err := hoverPosition(chart, name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if l, ok := chart.Scene().LayerAt(pos.X, pos.Y); !ok || l.Series != name {
			t.Errorf("expected %s under its hover position %v, got %v", name, pos, l)
		}
	}
	if _, err := hoverPosition(chart, "Mistral"); err == nil {
		t.Errorf("expected an error for an unknown series")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "usage.csv")
	if err := os.WriteFile(input, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	outputPath = filepath.Join(dir, "out.png")
	layoutPath = filepath.Join(dir, "layout.xlsx")
	hover = "Claude"
	dateField = backend.DefaultDateField
	scale = 1
	if err := run(nil, []string{input}); err != nil {
		t.Fatalf("expected export to succeed, got %v", err)
	}
	f, err := os.Open(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("expected a png, got %v", err)
	}
	if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 500 {
		t.Errorf("expected 600x500, got %v", b)
	}
	if _, err := os.Stat(layoutPath); err != nil {
		t.Errorf("expected layout workbook, got %v", err)
	}
}
