// Package main is an interactive demo shell for the lineedit buffer. It
// renders one input field with completion, history, suggestions, and
// validation wired up from the configuration file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/lineedit/buffer"
	"github.com/dshills/lineedit/completion"
	"github.com/dshills/lineedit/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&configPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("lineedit %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	opts, res, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer res.Close()

	accepted := make(chan string, 1)
	opts = append(opts, buffer.WithAcceptHandler(func(b *buffer.Buffer) bool {
		select {
		case accepted <- b.Text():
		default:
		}
		return false
	}))
	if len(cfg.Completion.Words) == 0 {
		// Give the demo something to complete out of the box.
		opts = append(opts, buffer.WithCompleter(completion.NewFuzzyWordCompleter(demoWords)))
	}

	buf := buffer.New(opts...)

	ui, err := newUI(buf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	lines, err := ui.Run(accepted)
	ui.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	for _, line := range lines {
		fmt.Println(line)
	}
	return 0
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "lineedit.toml"
	}
	return home + "/.config/lineedit/lineedit.toml"
}

var demoWords = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
	"golf", "hotel", "india", "juliet", "kilo", "lima",
}
