package main

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/streamgraph/backend"
	"git.sr.ht/~whereswaldon/streamgraph/plot"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	chart      *StreamChart
	openBtn    widget.Clickable
	loadErr    string
	source     string
	generation uint64

	th             *material.Theme
	snapshotStream *stream.Stream[backend.Snapshot]
	snapshot       backend.Snapshot
	// picked receives the outcome of the file picker, which blocks.
	picked chan pickResult
}

type pickResult struct {
	name string
	rc   io.ReadCloser
	err  error
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg plot.Config) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return &UI{
		ws:             ws,
		th:             th,
		expl:           expl,
		chart:          NewStreamChart(plot.NewChart(backend.DefaultCatalog(), cfg)),
		snapshotStream: stream.New(ws.Controller, ws.Bundle.Datasource.Snapshots),
		picked:         make(chan pickResult, 1),
	}
}

// Update the state of the UI from input events and newly published data.
func (ui *UI) Update(gtx C) {
	ui.snapshotStream.ReadInto(gtx, &ui.snapshot, backend.Snapshot{})
	if s := ui.snapshot; s.Generation != ui.generation {
		ui.generation = s.Generation
		ui.source = s.Source
		ui.loadErr = ""
		if s.Err != nil {
			ui.loadErr = s.Err.Error()
		}
		ui.chart.Render(s.Rows)
	}
	if ui.openBtn.Clicked(gtx) {
		go func() {
			rc, err := ui.expl.ChooseFile(".csv", ".txt", ".xlsx", ".xlsm")
			ui.picked <- pickResult{name: pickedName(rc), rc: rc, err: err}
			ui.ws.Invalidate()
		}()
	}
	select {
	case res := <-ui.picked:
		switch {
		case errors.Is(res.err, explorer.ErrUserDecline):
		case res.err != nil:
			ui.loadErr = res.err.Error()
		default:
			ui.ws.Bundle.Datasource.LoadFromStream(res.name, res.rc)
		}
	default:
	}
	ui.chart.Update(gtx)
}

// pickedName names a stream returned by the file picker. Platforms that
// hand out plain files reveal the path; others default to CSV.
func pickedName(rc io.ReadCloser) string {
	if f, ok := rc.(*os.File); ok {
		return f.Name()
	}
	return "picked.csv"
}

func (ui *UI) layoutToolbar(gtx C) D {
	return layout.UniformInset(4).Layout(gtx, func(gtx C) D {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				btn := material.IconButton(ui.th, &ui.openBtn, openIcon, "Open data file")
				btn.Size = 20
				btn.Inset = layout.UniformInset(6)
				return btn.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: 8}.Layout),
			layout.Flexed(1, func(gtx C) D {
				name := "No file loaded"
				if ui.source != "" {
					name = filepath.Base(ui.source)
				}
				l := material.Body1(ui.th, name)
				l.MaxLines = 1
				return l.Layout(gtx)
			}),
		)
	})
}

func (ui *UI) layoutError(gtx C) D {
	if len(ui.loadErr) == 0 {
		return D{}
	}
	return layout.Inset{Left: 4, Right: 4}.Layout(gtx, func(gtx C) D {
		l := material.Body2(ui.th, ui.loadErr)
		l.Color = errorColor
		return l.Layout(gtx)
	})
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Rigid(ui.layoutError),
		layout.Flexed(1, func(gtx C) D {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
				return ui.chart.Layout(gtx, ui.th)
			})
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No data yet.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Data File").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			l := material.Body2(ui.th, ui.loadErr)
			l.Color = errorColor
			return l.Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.chart.Initialized() {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
