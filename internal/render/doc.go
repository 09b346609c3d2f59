// Package render draws editor panes, the debug pane and the status line
// onto a backend.
//
// Text is drawn one grapheme cluster per cell run, measured with uniseg,
// so combining marks stay attached and wide characters take two columns.
package render
