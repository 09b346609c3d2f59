package app

import (
	"fmt"

	"github.com/dshills/blockwrap/internal/backend"
	"github.com/dshills/blockwrap/internal/config"
	"github.com/dshills/blockwrap/internal/input"
)

// debugStep is how far Alt+Up and Alt+Down scroll the debug pane.
const debugStep = 10

// quitSignal is posted when the Run context ends.
type quitSignal struct{}

// handle applies one event.
func (a *Application) handle(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		a.layout()
	case backend.EventKey:
		return a.handleKey(ev)
	case backend.EventInterrupt:
		return a.handleInterrupt(ev.Data)
	}
	return nil
}

func (a *Application) handleKey(ev backend.Event) error {
	b, ok := a.keymap.Lookup(ev)
	if !ok {
		a.setMessage("%s is not bound", input.ChordOf(ev))
		return nil
	}
	a.message = ""

	switch b.Action {
	case input.ActionQuit:
		return ErrQuit
	case input.ActionNextPane:
		a.focus(a.active + 1)
	case input.ActionPrevPane:
		a.focus(a.active - 1)
	case input.ActionToggleDebug:
		a.debug = !a.debug
		a.layout()
	case input.ActionDebugUp:
		a.debugScroll = max(a.debugScroll-debugStep, 0)
	case input.ActionDebugDown:
		a.debugScroll += debugStep
	case input.ActionCommand:
		changed, err := a.Active().Editor.Dispatch(b.Command, b.Args)
		if err != nil {
			a.setMessage("%v", err)
			return nil
		}
		a.logger.Debug("%s changed=%t", b.Describe(), changed)
	}
	return nil
}

func (a *Application) focus(i int) {
	n := len(a.docs)
	a.active = ((i % n) + n) % n
	a.runner.SetEditor(a.Active().Editor)
}

func (a *Application) handleInterrupt(data any) error {
	switch v := data.(type) {
	case quitSignal:
		return ErrQuit
	case *config.Config:
		a.reload(v)
	case error:
		a.logger.Warn("config reload: %v", v)
		a.setMessage("config: %v", v)
	}
	return nil
}

// reload applies a re-read configuration. The pane count and log file
// take effect on the next start.
func (a *Application) reload(cfg *config.Config) {
	if err := a.applyStyle(cfg); err != nil {
		a.logger.Warn("config reload: %v", err)
		a.setMessage("%v", err)
		return
	}
	a.logger.SetLevel(logLevel(cfg.Log))
	for _, d := range a.docs {
		d.Editor.SetWrapWidth(cfg.Editor.WrapWidth)
	}
	if a.debug != cfg.Editor.DebugPane {
		a.debug = cfg.Editor.DebugPane
		a.layout()
	}
	if cfg.Editor.Panes != a.cfg.Editor.Panes {
		a.logger.Info("pane count %d applies after restart", cfg.Editor.Panes)
	}
	a.cfg = cfg
	a.setMessage("config reloaded")
}

func (a *Application) setMessage(format string, args ...any) {
	a.message = fmt.Sprintf(format, args...)
}
