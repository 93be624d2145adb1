package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"reportview/internal/config"
	"reportview/internal/engine"
	"reportview/internal/parse"
	"reportview/internal/textview"
	"reportview/internal/ui"
	"reportview/internal/util/logx"
	"reportview/internal/version"
)

func main() {
	logx.SetLevelFromEnv()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Println("reportview", version.String())
		return
	}

	// Setup cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var in io.Reader = os.Stdin
	if !cfg.UseStdin {
		f, err := os.Open(cfg.FilePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open report:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	tbl, err := parse.ReadDocument(in, cfg.Format, cfg.Title)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse report:", err)
		os.Exit(1)
	}

	view := engine.NewView(tbl, cfg.Locale, cfg.PageSize)

	logx.Infof("starting reportview %s: %s", version.String(), cfg.String())
	if cfg.Static || !isatty.IsTerminal(os.Stdout.Fd()) {
		runStatic(view, cfg)
		return
	}
	if err := ui.Run(ctx, cfg, view); err != nil {
		logx.Errorf("reportview exited with error: %v", err)
		os.Exit(1)
	}
}

// runStatic prints the table once and exits, honoring the script-mode
// search and sort flags.
func runStatic(view *engine.View, cfg *config.Config) {
	if cfg.Search != "" {
		view.SetSearch(cfg.Search)
	}
	for col, val := range cfg.Filters {
		view.SetColumnFilter(col, val)
	}
	if cfg.SortBy != "" {
		view.SetSort(cfg.SortBy, cfg.SortDesc)
	}
	width := 0
	if isatty.IsTerminal(os.Stdout.Fd()) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}
	if err := textview.Render(os.Stdout, view.Table.Title, view.Table.Columns, view.Filtered(), width); err != nil {
		fmt.Fprintln(os.Stderr, "render:", err)
		os.Exit(1)
	}
}
