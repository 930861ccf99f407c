// Command scan-media fills the slides image index without starting the UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/billie-coop/slides/internal/config"
	"github.com/billie-coop/slides/internal/logging"
	"github.com/billie-coop/slides/internal/media"
	"github.com/dustin/go-humanize"
)

func main() {
	dir := flag.String("dir", ".", "project directory holding "+config.DataDirName)
	prune := flag.Bool("prune", true, "drop rows whose file no longer exists")
	list := flag.Bool("list", false, "print every indexed path after scanning")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: scan-media [flags] [root ...]\n\nRoots default to media_roots from the config.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *dir, *prune, *list, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dir string, prune, list bool, roots []string) error {
	cfgManager := config.NewManager(dir)
	if err := cfgManager.Load(); err != nil {
		return err
	}
	cfg := cfgManager.Get()

	logger := logging.Configure(logging.Options{
		Profile: logging.ProfileRuntime,
		Level:   cfg.LogLevel,
		Out:     os.Stderr,
	})

	if len(roots) == 0 {
		roots = cfg.MediaRoots
	}

	index, err := media.OpenSQLiteIndex(cfg.IndexPath)
	if err != nil {
		return err
	}
	defer index.Close()

	scanner := media.NewScanner(index, logger)
	res, err := scanner.Scan(ctx, roots...)
	if err != nil {
		return err
	}

	removed := 0
	if prune {
		if removed, err = scanner.Prune(ctx); err != nil {
			return err
		}
	}

	paths, err := media.NewLister(index, logger).List(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Scanned %d roots in %s\n", len(roots), res.Elapsed.Round(time.Millisecond))
	fmt.Printf("  seen:    %s\n", humanize.Comma(int64(res.Seen)))
	fmt.Printf("  added:   %s\n", humanize.Comma(int64(res.Added)))
	fmt.Printf("  removed: %s\n", humanize.Comma(int64(removed)))
	fmt.Printf("  indexed: %s\n", humanize.Comma(int64(len(paths))))
	for _, root := range res.Skipped {
		fmt.Printf("  skipped root: %s\n", root)
	}

	if list {
		for _, p := range paths {
			fmt.Println(p)
		}
	}
	return nil
}
