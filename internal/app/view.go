package app

import "github.com/dshills/blockwrap/internal/render"

// layout resizes every editor to its pane.
func (a *Application) layout() {
	w, h := a.backend.Size()
	panes, _, _ := render.Layout(w, h, len(a.docs), a.debug)
	for i, d := range a.docs {
		cw, ch := render.ContentSize(panes[i])
		d.Editor.UpdatePaneSize(cw, ch)
	}
}

func (a *Application) draw() {
	w, h := a.backend.Size()
	panes, dbg, status := render.Layout(w, h, len(a.docs), a.debug)

	r := a.renderer
	r.Begin()
	for i, d := range a.docs {
		r.Editor(panes[i], d.Name, d.Editor, i == a.active)
	}
	r.Separators(panes)
	if a.debug {
		if js, err := a.Active().Editor.DebugJSON(); err == nil {
			a.debugScroll = r.Debug(dbg, js, a.debugScroll)
		} else {
			a.logger.Error("debug state: %v", err)
		}
	}
	r.Status(status, render.StatusText(a.active, len(a.docs), a.Active().Editor), a.message)
	r.End()
}
