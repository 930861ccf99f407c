// Package main is the entry point for the slides application.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/billie-coop/slides/internal/app"
	"github.com/billie-coop/slides/internal/config"
	"github.com/billie-coop/slides/internal/logging"
	"github.com/billie-coop/slides/internal/tui"
	tea "github.com/charmbracelet/bubbletea/v2"
)

func main() {
	dir := flag.String("dir", ".", "project directory holding "+config.DataDirName)
	flag.Parse()

	if err := run(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string) error {
	cfgManager := config.NewManager(dir)
	if err := cfgManager.Load(); err != nil {
		return err
	}
	cfg := cfgManager.Get()

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := logging.OpenFile(filepath.Join(cfgManager.DataDir(), "slides.log"))
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := logging.Configure(logging.Options{
		Profile: logging.ProfileRuntime,
		Level:   cfg.LogLevel,
		Out:     logFile,
	})

	appInstance, err := app.New(cfgManager, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Close(); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	model := tui.New(appInstance)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.Bind(p)

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
