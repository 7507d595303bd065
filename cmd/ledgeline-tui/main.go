package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/automoto/ledgeline/launch"
	"github.com/automoto/ledgeline/tui"
	"github.com/gdamore/tcell/v2"
)

func main() {
	var flags launch.Flags
	flags.Register(flag.CommandLine)
	logPath := flag.String("log", "", "Write log output to this file instead of discarding it")
	flag.Parse()

	done, err := flags.ApplyConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if done {
		return
	}

	// the terminal is ours while the viewer runs
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	src, fetcher, err := flags.Source()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v, err := tui.NewViewer(screen, launch.Factory(ctx, src, fetcher, flags.Seed))
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	err = v.Run(ctx)
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
