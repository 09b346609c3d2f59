// Package main is the entry point for the blockwrap editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/blockwrap/internal/app"
	"github.com/dshills/blockwrap/internal/input"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 0
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags returns false when the invocation only asked for help,
// version or the key list.
func parseFlags() (app.Options, bool) {
	var opts app.Options
	var showVersion, showKeys, headless bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Script, "script", "", "Lua script to run against the first pane")
	flag.StringVar(&opts.Script, "s", "", "Lua script to run against the first pane (shorthand)")
	flag.BoolVar(&headless, "headless", false, "Print the panes instead of opening the terminal")
	flag.BoolVar(&showKeys, "keys", false, "List the default key bindings")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "blockwrap - a block-structured wrapping editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: blockwrap [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  blockwrap                       Two scratch panes\n")
		fmt.Fprintf(os.Stderr, "  blockwrap a.go b.go             One file per pane\n")
		fmt.Fprintf(os.Stderr, "  blockwrap -s fmt.lua a.go | cat Run a script, print the result\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("blockwrap %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, false
	}
	if showKeys {
		for _, e := range input.Default().Bindings() {
			fmt.Printf("%-12s %s\n", e.Chord, e.Binding.Describe())
		}
		return opts, false
	}

	opts.Files = flag.Args()
	opts.Headless = headless || !app.IsTerminal(os.Stdout)
	return opts, true
}
