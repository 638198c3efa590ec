package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"jselect/internal/config"
	"jselect/internal/domain"
	"jselect/internal/eventbus"
	"jselect/internal/options"
	"jselect/internal/ui"
	"jselect/internal/ui/coordinator"
	"jselect/pkg/logger"
)

func runSelect(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := setupLogging(cfg.UISettings)
	defer logger.Sync()

	ctx := logger.WithLogger(cmd.Context(), &log)
	bus := eventbus.New(log.WithName("bus"))
	coord := coordinator.New(coordinator.Options{
		Widget:  cfg.Widget,
		Bus:     bus,
		Logger:  log,
		Context: ctx,
	})

	if err := loadInitial(cmd, coord); err != nil {
		return err
	}

	// styles must match the terminal the TUI draws on, not the value output
	lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(os.Stderr))
	model := ui.NewModel(coord, cfg, log)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)
	model.SetProgram(p)

	// The bus runs on the event loop, so events reach the program through a
	// buffered channel instead of a direct Send.
	events := make(chan eventbus.DomainEvent, 16)
	unsubscribe := bus.Subscribe(domain.EventError, func(e eventbus.DomainEvent) {
		select {
		case events <- e:
		default:
			log.Info("event channel full, dropping event", "type", string(e.Type()))
		}
	})
	go func() {
		for e := range events {
			p.Send(ui.EventMsg{Event: e})
		}
	}()
	defer func() {
		unsubscribe()
		close(events)
	}()

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return errAborted
		}
		return fmt.Errorf("running program: %w", err)
	}
	if !model.Submitted() {
		return errAborted
	}
	return writeValue(cmd.OutOrStdout(), cfg.UISettings.Output, model.FormValue())
}

// setupLogging opens the log file; without one the program logs nothing
func setupLogging(s config.UISettings) logr.Logger {
	if s.LogFile == "" {
		return logr.Discard()
	}
	f, err := logger.OpenFile(s.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
		return logr.Discard()
	}
	return *logger.Setup(f, s.LogLevel)
}

// loadInitial feeds the options file and the initial value flags to the engine
func loadInitial(cmd *cobra.Command, coord *coordinator.Coordinator) error {
	if path, _ := cmd.Flags().GetString("options"); path != "" {
		list, err := options.Load(path)
		if err != nil {
			return err
		}
		if err := coord.LoadOptions(list.Groups, list.Options); err != nil {
			return fmt.Errorf("loading options: %w", err)
		}
	}

	if values, _ := cmd.Flags().GetStringArray("value"); len(values) > 0 {
		var raw any = values
		if coord.Selection.Mode() == domain.ModeSingle {
			raw = values[0]
		}
		if err := coord.SetValue(raw); err != nil {
			return fmt.Errorf("setting value: %w", err)
		}
	}
	if doc, _ := cmd.Flags().GetString("value-json"); doc != "" {
		coord.SetValueFromSerialized(doc)
	}
	return nil
}
