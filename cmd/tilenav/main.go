// Package main is the entry point for tilenav.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/tilenav/internal/app"
	"github.com/samdwyer/tilenav/internal/config"
	"github.com/samdwyer/tilenav/internal/level"
	"github.com/samdwyer/tilenav/internal/telemetry"
	"github.com/samdwyer/tilenav/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	levelID := flag.String("level", "", "embedded level ID, see -list")
	levelFile := flag.String("level-file", "", "level JSON file, overrides -level")
	mode := flag.String("mode", "", "adjacency mode: orthogonal or diagonal")
	generate := flag.Bool("generate", false, "generate a random level")
	seed := flag.Int64("seed", 0, "seed for -generate and -batch")
	watch := flag.Bool("watch", false, "rebuild the grid when -level-file changes")
	headless := flag.Bool("headless", false, "print a route instead of starting the viewer")
	batch := flag.Int("batch", 0, "with -headless, search this many random routes")
	list := flag.Bool("list", false, "list the embedded levels and exit")
	flag.Parse()

	if *list {
		levels, err := level.LoadRegistry()
		if err != nil {
			log.Fatalf("Failed to load levels: %v", err)
		}
		app.ListLevels(os.Stdout, levels)
		return
	}

	// Load .env file for local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}
	applyFlags(&cfg, *levelID, *levelFile, *mode, *generate, *seed, *watch)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	closeLog, err := setupLogging(cfg, *headless)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer closeLog()

	setupOTelEnv()
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		slog.Warn("telemetry setup failed, running without observability", "error", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.Error("telemetry shutdown failed", "error", err)
			}
		}()
	}

	if *headless {
		if err := runHeadless(ctx, cfg, *batch, *seed); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	viewer, err := app.New(cfg, screen)
	if err != nil {
		screen.Close()
		log.Fatalf("Failed to initialize viewer: %v", err)
	}
	if err := viewer.Run(ctx); err != nil {
		log.Fatalf("Viewer error: %v", err)
	}
}

func applyFlags(cfg *config.Config, levelID, levelFile, mode string, generate bool, seed int64, watch bool) {
	if levelID != "" {
		cfg.Level = levelID
	}
	if levelFile != "" {
		cfg.LevelFile = levelFile
	}
	if mode != "" {
		cfg.Mode = mode
	}
	if generate {
		cfg.Generate.Enabled = true
	}
	if seed != 0 {
		cfg.Generate.Seed = seed
	}
	if watch {
		cfg.Watch = true
	}
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is
// set and no endpoint was configured explicitly.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_API_KEY")
	if apiKey == "" || os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = "tilenav"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

// setupLogging installs the default slog logger. The viewer owns the
// terminal, so it logs to a file; headless runs log to stderr.
func setupLogging(cfg config.Config, headless bool) (func(), error) {
	lvl, _ := config.ParseLogLevel(cfg.LogLevel)

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if !headless && cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})))
	return closeFn, nil
}

func runHeadless(ctx context.Context, cfg config.Config, batch int, seed int64) error {
	levels, err := level.LoadRegistry()
	if err != nil {
		return err
	}
	def, err := app.ResolveLevel(ctx, cfg, levels)
	if err != nil {
		return err
	}
	g, _, err := def.BuildGrid(ctx)
	if err != nil {
		return err
	}

	if batch > 0 {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		start := time.Now()
		sum, err := app.RunBatch(ctx, g, cfg.NavMode(), batch, cfg.BatchWorkers, seed)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s in %s\n", def.ID, sum, time.Since(start).Round(time.Millisecond))
		return nil
	}

	_, err = app.PrintRoute(ctx, os.Stdout, g, app.DefaultQuery(def, cfg.NavMode()))
	return err
}
