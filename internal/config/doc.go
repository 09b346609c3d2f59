// Package config loads the blockwrap configuration file.
//
// The file is TOML with four sections:
//
//	[editor]
//	wrap_width = 40     # base wrap width, at least 8
//	panes = 2           # editor panes, 1 to 4
//	debug_pane = true   # show the state of the active editor
//
//	[log]
//	level = "debug"
//	file = "/tmp/blockwrap.log"
//
//	[theme]
//	text = "#d0d0d0"
//	background = "#1c1c1c"
//
//	[keys]
//	"Ctrl+D" = "delete_char_forward"
//
// Missing keys keep their defaults; unknown keys are an error. A Watcher
// reloads the file when it changes on disk.
package config
