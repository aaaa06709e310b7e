package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"chinook/internal/shared"
	"chinook/internal/ui"
)

// TUI launches the interactive terminal UI for browsing playlists.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	userID, err := r.resolveUser(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/chinook-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.library, r.notifier, userID)
	defer model.Close()

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
