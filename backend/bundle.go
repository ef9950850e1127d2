package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState is everything a window needs from the non-UI world.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

type Bundle struct {
	Config     Config
	Datasource *Datasource
}

func NewBundle(cfg Config, ds *Datasource) Bundle {
	return Bundle{
		Config:     cfg,
		Datasource: ds,
	}
}
