// Command periovox is the main entry point for the periovox dictation
// charting server. It reads dictated shorthand lines from stdin (the
// upstream speech-to-text layer delivers finals as text), interprets them,
// and maintains the in-session periodontal chart.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/periovox/periovox/internal/app"
	"github.com/periovox/periovox/internal/config"
	"github.com/periovox/periovox/internal/observe"
)

// version is stamped by the release build.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "periovox: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "periovox: %v\n", err)
		}
		return 1
	}

	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("periovox starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "periovox",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		return 1
	}

	printStartupSummary(cfg)
	slog.Info("dictation ready — type commands, Ctrl+D to finish, Ctrl+C to abort")

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		return 1
	}
	if err := otelShutdown(shutdownCtx); err != nil {
		slog.Warn("telemetry shutdown error", "err", err)
	}
	slog.Info("goodbye")
	return 0
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║        periovox — startup summary     ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printEntry("Debounce", cfg.Dictation.Debounce().String())
	printEntry("Clear delay", cfg.Dictation.ClearDelay().String())
	printEntry("Extra synonyms", fmt.Sprintf("%d", len(cfg.Dictation.Synonyms)))
	if cfg.Dictation.Suggestions.Disabled {
		printEntry("Suggestions", "disabled")
	} else {
		printEntry("Suggestions", "enabled")
	}
	printEntry("Missing teeth", fmt.Sprintf("%d", len(cfg.Chart.MissingTeeth)))
	if cfg.Server.ListenAddr != "" {
		printEntry("Admin addr", cfg.Server.ListenAddr)
	} else {
		printEntry("Admin addr", "(disabled)")
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printEntry(name, value string) {
	if len(value) > 19 {
		value = value[:16] + "…"
	}
	fmt.Printf("║  %-15s : %-19s ║\n", name, value)
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
