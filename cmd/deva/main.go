package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/Devdeep8/let-s-do-it/internal/app"
	"github.com/Devdeep8/let-s-do-it/internal/countdown"
	"github.com/Devdeep8/let-s-do-it/internal/model"
	"github.com/Devdeep8/let-s-do-it/internal/quote"
	"github.com/Devdeep8/let-s-do-it/internal/recorder"
	"github.com/Devdeep8/let-s-do-it/internal/refresh"
	"github.com/Devdeep8/let-s-do-it/internal/roadmap"
	"github.com/Devdeep8/let-s-do-it/internal/store"
	"github.com/Devdeep8/let-s-do-it/internal/theme"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.StringP("config", "c", model.DefaultConfigPath(), "path to the YAML config file")
	dbPath := flag.String("db", "", "SQLite database path (overrides database.path)")
	logPath := flag.String("log", "", "log file path (overrides log.file)")
	writeConfig := flag.Bool("write-config", false, "write the effective config to --config and exit")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *logPath != "" {
		cfg.Log.File = *logPath
	}

	if *writeConfig {
		if err := model.SaveConfig(*configPath, cfg); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", *configPath)
		return nil
	}

	if err := theme.Apply(cfg.Display.Theme); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := tea.LogToFile(cfg.Log.File, "deva")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	targets, err := countdown.ResolveTargets(ctx, s, cfg.Countdown)
	if err != nil {
		return err
	}

	loop := refresh.New()
	defer loop.Stop()

	m, err := app.New(ctx, app.Options{
		Config:   cfg,
		Recorder: recorder.New(s, recorder.WithWaterGoal(cfg.Water.GoalML)),
		Tracker:  roadmap.NewTracker(s),
		Targets:  targets,
		Loop:     loop,
		Quotes:   quote.Defaults,
	})
	if err != nil {
		return err
	}

	log.Printf("deva starting: db=%s", cfg.Database.Path)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
