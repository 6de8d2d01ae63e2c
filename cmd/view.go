package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sectionsnap/internal/analytics"
	"sectionsnap/internal/config"
	"sectionsnap/internal/document"
	"sectionsnap/internal/eventbus"
	"sectionsnap/internal/ui"
)

// e2eEnv makes the viewer print a ready marker for the terminal test driver
const e2eEnv = "SECTIONSNAP_E2E_TEST"

var (
	viewSection     string
	viewWatch       bool
	viewNoMouse     bool
	viewAnalyticsDB string
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&viewSection, "section", "s", "", "id of the section to open at")
	f.BoolVarP(&viewWatch, "watch", "w", false, "reload the document when it changes on disk")
	f.BoolVar(&viewNoMouse, "no-mouse", false, "leave the mouse to the terminal")
	f.StringVar(&viewAnalyticsDB, "analytics-db", "", "record section views in this database")
}

func runView(cmd *cobra.Command, args []string) error {
	path, fragment := splitTarget(args[0])
	if viewSection != "" {
		fragment = viewSection
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return err
	}

	if logFile != "" {
		f, err := tea.LogToFile(logFile, "sectionsnap")
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	cfgPath := configPath(filepath.Dir(absPath))
	cfg, err := loadOrCreateConfig(config.NewConfigServiceWithBus(bus, cfgPath), cfgPath)
	if err != nil {
		return err
	}
	if viewWatch {
		cfg.Watch.Enabled = true
	}
	if viewAnalyticsDB != "" {
		cfg.Analytics.Enabled = true
		cfg.Analytics.Database = viewAnalyticsDB
	}

	doc, err := document.Load(absPath, cfg.UI.SectionLevel)
	if err != nil {
		return err
	}
	log.Printf("Loaded %s with %d sections", absPath, len(doc.Sections))
	bus.Publish(eventbus.DocumentLoadedEvent{Path: absPath, Sections: len(doc.Sections)})

	if cfg.Analytics.Enabled {
		db, err := analytics.Open(databasePath(cfgPath, cfg.Analytics.Database))
		if err != nil {
			return err
		}
		defer db.Close()
		rec := analytics.NewRecorder(bus, analytics.NewStore(db), absPath)
		defer rec.Close()
	}

	model := ui.NewModel(doc, ui.Options{
		Config:   cfg,
		Fragment: fragment,
		Bus:      bus,
		Ready:    os.Getenv(e2eEnv) == "1",
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !viewNoMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)
	model.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventSectionChanged,
		eventbus.EventNavigatorToggled,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}
	forwardCtx, stopForwarding := context.WithCancel(ctx)
	defer stopForwarding()
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-forwardCtx.Done():
				return
			}
		}
	}()

	if cfg.Watch.Enabled {
		w, err := document.NewWatcher(absPath, time.Duration(cfg.Watch.Debounce), func(changed string) {
			p.Send(ui.DocumentChangedMsg{Path: changed})
		})
		if err != nil {
			log.Printf("Watching %s failed: %v", absPath, err)
			bus.Publish(eventbus.ErrorEvent{Message: "Could not watch the document", Err: err})
		} else {
			w.Start()
			defer w.Stop()
		}
	}

	log.Printf("Starting UI...")
	_, err = p.Run()
	stopForwarding()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}
