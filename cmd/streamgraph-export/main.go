// Command streamgraph-export renders a data file as a streamgraph image
// without opening a window.
package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/vec"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
	"git.sr.ht/~whereswaldon/streamgraph/plot"
	"git.sr.ht/~whereswaldon/streamgraph/snapshot"
)

var (
	outputPath string
	layoutPath string
	hover      string
	sheet      string
	dateField  string
	scale      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "streamgraph-export [input.csv|input.xlsx]",
		Short: "Render a streamgraph of a data file as PNG",
		Long: `streamgraph-export stacks the model usage columns of a CSV or XLSX
file into a streamgraph and writes it as a PNG image. With --hover the
tooltip of one series is drawn as if the pointer rested on its layer.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "streamgraph.png", "Output PNG file")
	rootCmd.Flags().StringVar(&layoutPath, "layout", "", "Also write the stacked layout to this XLSX file")
	rootCmd.Flags().StringVar(&hover, "hover", "", "Series whose tooltip to draw")
	rootCmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to read from XLSX input (default: first sheet)")
	rootCmd.Flags().StringVar(&dateField, "date-field", backend.DefaultDateField, "Column holding each row's date")
	rootCmd.Flags().Float64Var(&scale, "scale", 1, "Pixels per canvas unit")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	rows, err := backend.LoadFile(inputPath, backend.LoadOptions{Sheet: sheet, DateField: dateField})
	if err != nil {
		return err
	}
	cfg := plot.DefaultConfig()
	cfg.DateField = dateField
	chart := plot.NewChart(backend.DefaultCatalog(), cfg)
	if !chart.Render(rows) {
		return fmt.Errorf("no rows in %s", inputPath)
	}

	if hover != "" {
		pos, err := hoverPosition(chart, hover)
		if err != nil {
			return err
		}
		chart.Dispatch(plot.PointerEvent{Kind: plot.Enter, Series: hover, Position: pos})
	}

	img := snapshot.Render(chart.Scene(), chart.Tooltip(), snapshot.Options{Scale: scale})
	if err := writePNG(outputPath, img); err != nil {
		return err
	}
	log.Printf("wrote %s", outputPath)

	if layoutPath != "" {
		if err := writeLayout(layoutPath, chart); err != nil {
			return err
		}
		log.Printf("wrote %s", layoutPath)
	}
	return nil
}

// hoverPosition returns a canvas point in the middle of the series' layer.
func hoverPosition(chart *plot.Chart, series string) (vec.Vec2, error) {
	shape, ok := chart.Scene().Layers.Get(series)
	if !ok {
		return vec.Vec2{}, fmt.Errorf("unknown series %q (known: %v)", series, chart.Catalog().Names())
	}
	if len(shape.Points) == 0 {
		return vec.Vec2{}, fmt.Errorf("series %q has no dated rows", series)
	}
	mid := shape.Points[len(shape.Points)/2]
	return vec.Vec2{X: mid.X, Y: (mid.Y0 + mid.Y1) / 2}.Add(chart.Config().PlotOrigin()), nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func writeLayout(path string, chart *plot.Chart) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create layout file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	layers := plot.Stack(chart.Records(), chart.Catalog())
	return snapshot.WriteLayout(f, chart.Records(), layers)
}
