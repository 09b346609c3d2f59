package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockwrap/internal/engine"
	"github.com/dshills/blockwrap/internal/logging"
)

// DefaultTimeout bounds a single Run.
const DefaultTimeout = 5 * time.Second

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-run timeout. Zero or less disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithOutput redirects the Lua print function. The default discards.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// Runner owns a Lua state bound to one editor at a time.
type Runner struct {
	L       *lua.LState
	editor  *engine.Editor
	timeout time.Duration
	logger  *logging.Logger
	out     io.Writer
	closed  bool
}

// New creates a runner for e. e may be nil and attached later with
// SetEditor.
func New(e *engine.Editor, opts ...Option) *Runner {
	r := &Runner{
		editor:  e,
		timeout: DefaultTimeout,
		logger:  logging.Null(),
		out:     io.Discard,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(r.L)
	lua.OpenTable(r.L)
	lua.OpenString(r.L)
	lua.OpenMath(r.L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		r.L.SetGlobal(name, lua.LNil)
	}
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
	r.install()
	return r
}

// SetEditor attaches the editor later scripts operate on.
func (r *Runner) SetEditor(e *engine.Editor) { r.editor = e }

// Run executes code. name labels the chunk in error messages.
func (r *Runner) Run(ctx context.Context, name, code string) error {
	return r.run(ctx, name, strings.NewReader(code))
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScriptFailed, err)
	}
	defer f.Close()
	return r.run(ctx, path, f)
}

func (r *Runner) run(ctx context.Context, name string, src io.Reader) (err error) {
	if r.closed {
		return ErrRunnerClosed
	}
	if r.editor == nil {
		return ErrNoEditor
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	fn, err := r.L.Load(src, name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScriptFailed, err)
	}

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: panic: %v", ErrScriptFailed, name, p)
		}
	}()

	start := time.Now()
	r.L.Push(fn)
	if err := r.L.PCall(0, lua.MultRet, nil); err != nil {
		r.L.SetTop(0)
		if cerr := ctx.Err(); cerr != nil {
			return fmt.Errorf("%w: %s: %w", ErrScriptFailed, name, cerr)
		}
		return fmt.Errorf("%w: %w", ErrScriptFailed, err)
	}
	r.L.SetTop(0)
	r.logger.Debug("script %s finished in %s", name, time.Since(start))
	return nil
}

// Close releases the Lua state. Further runs fail with ErrRunnerClosed.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

func (r *Runner) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
