package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
	"git.sr.ht/~whereswaldon/streamgraph/plot"
)

func main() {
	inputFile := flag.String("input", "", "CSV or XLSX file to chart (use - for CSV on stdin)")
	dateField := flag.String("date-field", backend.DefaultDateField, "name of the column holding each row's date")
	sheet := flag.String("sheet", "", "worksheet to read from XLSX input (defaults to the first)")
	flag.Parse()

	cfg := plot.DefaultConfig()
	cfg.DateField = *dateField

	ctx, cancel := context.WithCancel(context.Background())
	bundle, err := backend.NewBundle(ctx, backend.LoadOptions{Sheet: *sheet, DateField: *dateField})
	if err != nil {
		log.Fatal(err)
	}
	switch *inputFile {
	case "":
	case "-":
		bundle.Datasource.LoadFromStream("stdin.csv", os.Stdin)
	default:
		bundle.Datasource.Load(*inputFile)
	}

	go func() {
		defer cancel()
		w := app.NewWindow(
			app.Title("Streamgraph"),
			app.Size(unit.Dp(cfg.Width+40), unit.Dp(cfg.Height+120)),
		)
		if err := loop(ctx, w, bundle, cfg); err != nil {
			log.Fatal(err)
		}
		if err := bundle.Datasource.Close(); err != nil {
			log.Printf("failed closing datasource: %v", err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, cfg plot.Config) error {
	expl := explorer.NewExplorer(w)
	ws := backend.NewWindowState(ctx, bundle, w)
	ui := NewUI(ws, expl, cfg)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
