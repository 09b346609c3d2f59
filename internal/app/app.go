// Package app is the terminal host: it loads configuration and documents,
// lays out editor panes, feeds key events through the keymap to the
// active editor and redraws after every event.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/dshills/blockwrap/internal/backend"
	"github.com/dshills/blockwrap/internal/config"
	"github.com/dshills/blockwrap/internal/engine"
	"github.com/dshills/blockwrap/internal/input"
	"github.com/dshills/blockwrap/internal/logging"
	"github.com/dshills/blockwrap/internal/render"
	"github.com/dshills/blockwrap/internal/script"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means config.DefaultPath.
	ConfigPath string

	// Files are opened one per pane.
	Files []string

	// Script is a Lua file run against the active editor before the
	// first frame.
	Script string

	// Headless prints the panes to Stdout instead of opening a terminal.
	Headless bool

	// Backend overrides the tcell terminal.
	Backend backend.Backend

	// Logger overrides the logger built from the [log] section.
	Logger *logging.Logger

	// Stdout receives headless output. Defaults to os.Stdout.
	Stdout io.Writer
}

// Application owns the panes and the event loop.
type Application struct {
	opts   Options
	cfg    *config.Config
	logger *logging.Logger
	logOut io.Closer

	backend  backend.Backend
	renderer *render.Renderer
	theme    render.Theme
	keymap   *input.Keymap
	runner   *script.Runner
	watcher  *config.Watcher

	docs        []*Document
	active      int
	debug       bool
	debugScroll int
	message     string

	running atomic.Bool
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// New loads the configuration and the documents.
func New(opts Options) (*Application, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.ConfigPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			opts.ConfigPath = p
		}
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, &OperationError{Op: "load config", Target: opts.ConfigPath, Err: err}
		}
		cfg = loaded
	}

	a := &Application{opts: opts, cfg: cfg, debug: cfg.Editor.DebugPane}
	if err := a.openLog(); err != nil {
		return nil, err
	}
	if err := a.applyStyle(cfg); err != nil {
		a.Close()
		return nil, err
	}

	if len(opts.Files) > config.MaxPanes {
		a.Close()
		return nil, &OperationError{Op: "open", Target: "files", Err: ErrTooManyFiles}
	}
	panes := max(cfg.Editor.Panes, len(opts.Files))
	for i := range panes {
		var doc *Document
		if i < len(opts.Files) {
			d, err := OpenDocument(opts.Files[i], a.editorOptions()...)
			if err != nil {
				a.Close()
				return nil, err
			}
			doc = d
		} else {
			doc = ScratchDocument(i, a.editorOptions()...)
		}
		a.docs = append(a.docs, doc)
		a.logger.Debug("pane %d: %s is document %s", i+1, doc.Name, doc.ID)
	}

	a.runner = script.New(a.Active().Editor, script.WithLogger(a.logger.WithComponent("script")))
	a.logger.Info("started with %d panes", panes)
	return a, nil
}

func (a *Application) editorOptions() []engine.Option {
	return []engine.Option{
		engine.WithWrapWidth(a.cfg.Editor.WrapWidth),
		engine.WithLogger(a.logger.WithComponent("engine")),
	}
}

// applyStyle builds the theme and keymap for cfg.
func (a *Application) applyStyle(cfg *config.Config) error {
	theme, err := render.NewTheme(cfg.Theme)
	if err != nil {
		return &OperationError{Op: "load", Target: "theme", Err: err}
	}
	km := input.Default()
	if err := km.Override(cfg.Keys); err != nil {
		return &OperationError{Op: "load", Target: "keys", Err: err}
	}
	a.theme, a.keymap = theme, km
	if a.renderer != nil {
		a.renderer.SetTheme(theme)
	}
	return nil
}

// Documents returns the panes' documents in layout order.
func (a *Application) Documents() []*Document { return a.docs }

// Active returns the document of the focused pane.
func (a *Application) Active() *Document { return a.docs[a.active] }

// Config returns the configuration in effect.
func (a *Application) Config() *config.Config { return a.cfg }

// Message returns the status-line message.
func (a *Application) Message() string { return a.message }

// Run runs until the user quits or ctx is done. In headless mode it runs
// the script, prints the panes and returns.
func (a *Application) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if a.opts.Headless {
		return a.runHeadless(ctx)
	}

	b := a.opts.Backend
	if b == nil {
		t, err := backend.NewTerminal()
		if err != nil {
			return &OperationError{Op: "open", Target: "terminal", Err: err}
		}
		b = t
	}
	if err := b.Init(); err != nil {
		return &OperationError{Op: "init", Target: "terminal", Err: err}
	}
	defer b.Shutdown()
	a.backend = b
	a.renderer = render.New(b, a.theme)

	a.startWatcher()
	defer a.stopWatcher()
	stop := context.AfterFunc(ctx, func() {
		_ = b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitSignal{}})
	})
	defer stop()

	if err := a.runScript(ctx); err != nil {
		a.setMessage("%v", err)
	}
	a.layout()
	return a.loop()
}

func (a *Application) loop() error {
	for {
		a.draw()
		ev := a.backend.PollEvent()
		if ev.Type == backend.EventNone {
			return nil
		}
		if err := a.handle(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				a.logger.Info("quit")
				return nil
			}
			return err
		}
	}
}

func (a *Application) runScript(ctx context.Context) error {
	if a.opts.Script == "" {
		return nil
	}
	a.runner.SetEditor(a.Active().Editor)
	return a.runner.RunFile(ctx, a.opts.Script)
}

// Close releases the script runner and the log file.
func (a *Application) Close() {
	if a.runner != nil {
		a.runner.Close()
	}
	if a.logOut != nil {
		_ = a.logOut.Close()
		a.logOut = nil
	}
}
