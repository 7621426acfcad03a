package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/studyd/internal/storage"
	"github.com/sandeepkv93/studyd/internal/timer"
	"github.com/sandeepkv93/studyd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "studyd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	dbPath, err := databasePath()
	if err != nil {
		return err
	}
	repo, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	intervalEngine := timer.NewIntervalEngine(cfg.EngineBuffer)
	taskEngine := timer.NewTaskEngine(cfg.EngineBuffer)
	intervalEngine.Start()
	taskEngine.Start()
	defer intervalEngine.Shutdown()
	defer taskEngine.Shutdown()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	m := update.NewModelWithRuntime(cfg, repo, intervalEngine, taskEngine, notifier)
	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func databasePath() (string, error) {
	if path := os.Getenv("STUDYD_DB"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".studyd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return filepath.Join(dir, "studyd.db"), nil
}
