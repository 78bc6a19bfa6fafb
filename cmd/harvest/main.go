// Command harvest runs the feed pipeline once over the feed URLs given as
// arguments and writes the resulting items to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bilgisen/feedharvest/internal/app"
	"github.com/bilgisen/feedharvest/internal/config"
	"github.com/bilgisen/feedharvest/internal/logger"
)

func main() {
	pretty := flag.Bool("pretty", false, "indent JSON output")
	clearCache := flag.Bool("clear-cache", false, "drop cached image widths before harvesting")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-pretty] [-clear-cache] FEED_URL...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	// stdout carries the JSON result
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stderr",
		Pretty: cfg.IsDevelopment(),
	}); err != nil {
		panic(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := app.Build(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize pipeline")
	}
	defer pipeline.Close()

	if *clearCache {
		if err := pipeline.Cache.Clear(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to clear probe cache")
		}
	}

	items := pipeline.Processor.ParseFeeds(ctx, flag.Args())

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(items); err != nil {
		logger.Error().Err(err).Msg("Failed to write items")
		os.Exit(1)
	}
}
