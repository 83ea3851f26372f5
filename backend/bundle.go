package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

type WindowState struct {
	Bundle
	Controller *stream.Controller
	// Invalidate requests a new frame from any goroutine.
	Invalidate func()
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
		Invalidate: win.Invalidate,
	}
}

// Bundle holds the non-UI resources shared by every window.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(appCtx context.Context, opts LoadOptions) (Bundle, error) {
	ds, err := NewDatasource(appCtx, opts)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{
		Datasource: ds,
	}, nil
}
