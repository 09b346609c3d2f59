package app

import (
	"context"
	"fmt"
)

// HeadlessRows bounds the rows printed per pane in headless mode.
const HeadlessRows = 10000

// runHeadless runs the script against the active pane and prints every
// pane's rows, wrapped at the configured width.
func (a *Application) runHeadless(ctx context.Context) error {
	if err := a.runScript(ctx); err != nil {
		return err
	}
	for i, d := range a.docs {
		d.Editor.UpdatePaneSize(a.cfg.Editor.WrapWidth, HeadlessRows)
		if i > 0 {
			if _, err := fmt.Fprintln(a.opts.Stdout); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(a.opts.Stdout, "== %s ==\n", d.Name); err != nil {
			return err
		}
		for _, row := range d.Editor.Rows() {
			if _, err := fmt.Fprintln(a.opts.Stdout, row); err != nil {
				return err
			}
		}
	}
	return nil
}
