package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"ticklist/internal/config"
	"ticklist/internal/storage"
	"ticklist/internal/task"
	"ticklist/internal/telemetry"
	"ticklist/internal/tui"
)

func main() {
	cfg, err := config.Load("ticklist.yml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	// Store logs would tear the TUI; keep them in a file beside the data.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "data dir:", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slot, closeSlot, err := storage.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open slot:", err)
		os.Exit(1)
	}
	defer closeSlot()

	store, err := task.NewStore(task.Options{
		Slot:   slot,
		Events: telemetry.NewMemoryRepository(),
		Logger: log.New(logFile, "", log.LstdFlags),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "build store:", err)
		os.Exit(1)
	}
	store.Load()

	if _, err := tea.NewProgram(tui.NewApp(store), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tui:", err)
		os.Exit(1)
	}
}
