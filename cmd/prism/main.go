package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/prism-go/engine"
	"github.com/Carmen-Shannon/prism-go/engine/config"
	"github.com/Carmen-Shannon/prism-go/engine/window"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	placeholder := flag.Bool("placeholder", false, "bind the placeholder pipeline each frame")
	cursorToggle := flag.Bool("cursor-toggle", false, "pointer presses toggle cursor visibility and clear color")
	touchLogging := flag.Bool("touch-logging", false, "log touch events")
	profiling := flag.Bool("profiling", false, "log frame statistics")
	fatalFrames := flag.Bool("fatal-frames", false, "exit with code 1 when a frame cannot be rendered")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags layer over the config file.
	cfg.PlaceholderPipeline = cfg.PlaceholderPipeline || *placeholder
	cfg.CursorToggle = cfg.CursorToggle || *cursorToggle
	cfg.TouchLogging = cfg.TouchLogging || *touchLogging
	cfg.Profiling = cfg.Profiling || *profiling
	if *fatalFrames {
		cfg.FrameFailurePolicy = "fatal"
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithWidth(cfg.Width),
		window.WithHeight(cfg.Height),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create window: %v\n", err)
		os.Exit(1)
	}

	app, err := engine.NewApp(
		engine.WithWindow(win),
		engine.WithFeatures(cfg.Features()),
		engine.WithFailurePolicy(cfg.FailurePolicy()),
		engine.WithClearColors(cfg.ClearColors()),
		engine.WithProfiling(cfg.Profiling),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	log.Printf("Starting Prism - %s", cfg.Title)
	os.Exit(app.Run())
}
