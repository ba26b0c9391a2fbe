package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"folio/internal/config"
	"folio/internal/document"
	"folio/internal/eventbus"
	"folio/internal/library"
	"folio/internal/logging"
	"folio/internal/ui"
)

func main() {
	// Parse command line arguments
	var libraryDir string
	var debug bool
	flag.StringVar(&libraryDir, "dir", "", "Directory to scan for documents")
	flag.StringVar(&libraryDir, "d", "", "Directory to scan for documents (shorthand)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	// If no directory specified, check for remaining args
	if libraryDir == "" && flag.NArg() > 0 {
		libraryDir = flag.Arg(0)
	}

	// Set up logging
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log, logFile, err := logging.NewFileLogger("folio.log", level)
	if err != nil {
		fmt.Printf("Could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create event bus
	bus := eventbus.New(log)

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Warn().Err(err).Msg("error loading config, using defaults")
		cfg = config.DefaultConfig()
	}

	// Command line overrides the configured library directory
	if libraryDir != "" {
		absDir, err := filepath.Abs(libraryDir)
		if err != nil {
			fmt.Printf("Error resolving path: %v\n", err)
			os.Exit(1)
		}
		cfg.LibraryDir = absDir
	}

	// Initialize services
	librarySvc := library.NewLibraryService(bus, log)
	docSvc := document.NewService(bus, log)

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, docSvc, librarySvc, log)

	// Create Bubble Tea program with mouse support for the page-turn
	// gestures
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	// Forward domain events to the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forwardEvent := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Warn().Msg("event channel full, dropping event")
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventDocsDiscoveredBatch,
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
		eventbus.EventPaginated,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, forwardEvent)
	}
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Start initial scan
	if cfg.LibraryDir != "" {
		go librarySvc.StartScan(ctx, []string{cfg.LibraryDir})
	}

	// Run the UI
	log.Info().Str("library", cfg.LibraryDir).Msg("starting folio")
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("error running program")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	uiModel.Controller().Close()
	librarySvc.StopScan()
	if err := configSvc.Save(cfg); err != nil {
		log.Warn().Err(err).Msg("failed to save config")
	}
	close(eventChan)
	cancel()
	log.Info().Msg("folio exited")
}
