package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/appengine-ltd/scooter-rentals/internal/config"
	"github.com/appengine-ltd/scooter-rentals/internal/history"
	"github.com/appengine-ltd/scooter-rentals/internal/ui"
	"github.com/appengine-ltd/scooter-rentals/pkg/logger"
	"github.com/appengine-ltd/scooter-rentals/pkg/metrics"
)

// version, commit, date are injected at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		configPath  string
		newGame     bool
		seed        int64
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "config", "", "path to a YAML config file (default $SCOOT_CONFIG)")
	flag.BoolVar(&newGame, "new", false, "start a new business even if a save exists")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	flag.Parse()

	if showVersion {
		fmt.Printf("Scooter Rentals %s (%s) %s\n", version, commit, date)
		return
	}

	if err := run(configPath, newGame, seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, newGame bool, seed int64) error {
	ctx := context.Background()

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}
	log := logger.New(logger.Options{
		ServiceName: "scooter-rentals",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
		Output:      logOut,
	})

	clock := clockwork.NewRealClock()

	var recorder history.Recorder = history.NewNoopRecorder()
	if cfg.HistoryDB != "" {
		sqliteRecorder, err := history.NewSQLiteRecorder(cfg.HistoryDB, clock)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		recorder = sqliteRecorder
		log.Info(log.WithField(ctx, "path", cfg.HistoryDB), "history recorder opened")
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			log.Error(ctx, "close history", err)
		}
	}()

	app := ui.NewApp(ui.AppConfig{
		Version:     version,
		Commit:      commit,
		BuildDate:   date,
		In:          os.Stdin,
		Out:         os.Stdout,
		SavePath:    cfg.SavePath,
		MetricsFile: cfg.MetricsFile,
		NewGame:     newGame,
		Rules:       cfg.GameRules(),
		Seed:        cfg.Seed,
		Logger:      log,
		Recorder:    recorder,
		Metrics:     metrics.New(),
		Clock:       clock,
	})
	return app.Run(ctx)
}
