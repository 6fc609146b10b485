// Command apparat runs a political-intrigue game from the terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/talgya/apparat/internal/characters"
	"github.com/talgya/apparat/internal/config"
	"github.com/talgya/apparat/internal/engine"
	"github.com/talgya/apparat/internal/entropy"
	"github.com/talgya/apparat/internal/observe"
	"github.com/talgya/apparat/internal/persistence"
	"github.com/talgya/apparat/internal/scenario"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML config file")
	fresh := flag.Bool("new", false, "discard any saved game and start over")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel.Slog(),
	}))
	slog.SetDefault(logger)

	// ── Database ──────────────────────────────────────────────────────
	if err := ensureDir(cfg.DBPath); err != nil {
		slog.Error("failed to create database directory", "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(cfg.DBPath, persistence.WithLogger(logger))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Seed ──────────────────────────────────────────────────────────
	seed := cfg.Seed
	if seed == 0 {
		if s, err := db.GetMeta(persistence.MetaSeed); err == nil && !*fresh {
			seed, _ = strconv.ParseInt(s, 10, 64)
		}
	}
	if seed == 0 {
		if seed, err = entropy.NewSeed(); err != nil {
			slog.Error("failed to draw seed", "error", err)
			os.Exit(1)
		}
	}
	if err := db.SaveMeta(persistence.MetaSeed, strconv.FormatInt(seed, 10)); err != nil {
		slog.Error("failed to record seed", "error", err)
	}
	src := entropy.New(seed)

	// ── Load or Seed Game State ──────────────────────────────────────
	var state engine.State
	switch state, err = db.LoadGame(); {
	case *fresh || errors.Is(err, persistence.ErrNoGame):
		slog.Info("starting a new game", "seed", seed)
		state = scenario.Default(src, seed, cfg.PlayerName)
	case err != nil:
		slog.Error("failed to load game", "error", err)
		os.Exit(1)
	default:
		// Assemble moves src to the saved stream position.
		slog.Info("saved game restored", "turn", state.Turn, "characters", len(state.Characters))
	}

	// ── Metrics ───────────────────────────────────────────────────────
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := observe.NewMetrics(provider)
	if err != nil {
		slog.Warn("metrics disabled", "error", err)
		metrics, reader = observe.Noop(), nil
	}

	// ── Game ──────────────────────────────────────────────────────────
	opts := []engine.Option{
		engine.WithRules(cfg.Rules.Interaction()),
		engine.WithDecreePremium(cfg.Rules.DecreePowerPremium),
		engine.WithJournalLimit(cfg.Rules.JournalLimit),
		engine.WithNotifier(characters.NotifierFunc(func(n characters.Notification) {
			fmt.Printf("» %s: %s (%s)\n", n.CharacterName, n.Status, sessionName(n.Turn))
		})),
		engine.WithMetrics(metrics),
		engine.WithLogger(logger),
	}
	if cfg.Rules.ShuffleRelations {
		opts = append(opts, engine.WithShuffledRelations(entropy.Derive(seed, "relations")))
	}
	if cfg.Rules.DecreesEnabled {
		state.DecreesEnabled = true
	}
	game, err := engine.Assemble(state, src, opts...)
	if err != nil {
		slog.Error("failed to assemble game", "error", err)
		os.Exit(1)
	}

	sh := &shell{game: game, out: os.Stdout, store: db, reader: reader, log: logger}
	if err := sh.save(); err != nil {
		slog.Error("initial save failed", "error", err)
	}

	// ── Start ─────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	heading(os.Stdout, "APPARAT")
	fmt.Printf("Welcome, %s. It is the %s. Type help for commands.\n", game.Player().Name, sessionName(game.Turn()))

	run(ctx, sh, lines)

	slog.Info("final save...")
	if err := sh.save(); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("The apparatus sleeps. Game saved.")
}

// ensureDir creates the directory holding path.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

// run feeds lines to sh until the player quits, input ends, or ctx is
// cancelled.
func run(ctx context.Context, sh *shell, lines <-chan string) {
	for {
		fmt.Fprint(sh.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(sh.out)
			sh.log.Info("received signal, shutting down")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			quit, err := sh.exec(ctx, line)
			if err != nil {
				sh.log.Error("command failed", "command", line, "error", err)
			}
			if quit {
				return
			}
		}
	}
}
