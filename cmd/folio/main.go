package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
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

// Minimal entry point: no flags, library directory comes from config.
func main() {
	log, logFile, err := logging.NewFileLogger("folio.log", zerolog.InfoLevel)
	if err != nil {
		fmt.Printf("Could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New(log)

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Warn().Err(err).Msg("error loading config, using defaults")
		cfg = config.DefaultConfig()
	}

	librarySvc := library.NewLibraryService(bus, log)
	docSvc := document.NewService(bus, log)

	uiModel := ui.NewModel(bus, cfg, docSvc, librarySvc, log)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	eventChan := make(chan eventbus.DomainEvent, 100)
	for _, eventType := range []eventbus.EventType{
		eventbus.EventDocsDiscoveredBatch,
		eventbus.EventScanStarted,
		eventbus.EventScanCompleted,
		eventbus.EventPaginated,
		eventbus.EventError,
	} {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
			}
		})
	}
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	if cfg.LibraryDir != "" {
		go librarySvc.StartScan(ctx, []string{cfg.LibraryDir})
	}

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	uiModel.Controller().Close()
	librarySvc.StopScan()
	close(eventChan)
}
