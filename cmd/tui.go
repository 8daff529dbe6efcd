package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mlc/internal/shared"
	"github.com/desertthunder/mlc/internal/tasks"
	"github.com/desertthunder/mlc/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing a reconciliation.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	reference, local := r.catalogSources(cmd)
	if reference.Path == "" || local.Path == "" {
		return fmt.Errorf("%w: --reference and --local", shared.ErrMissingArgument)
	}

	format, err := r.format(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, logFile, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer logFile.Close()
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, ui.Options{
		Reference: reference,
		Local:     local,
		Export:    tasks.ExportOpts{Format: format, OutputDir: r.config.Export.Directory},
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
