// Package ui implements the interactive terminal front end: a parameter form
// over the same conversion pipeline the convert command drives.
package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"vid2anim/internal/model"
)

// Run starts the interactive session and blocks until the user quits. If the
// session ended on a failed conversion, that failure is returned so the
// process exits nonzero.
func Run(ctx context.Context, inputPath string, opts model.CLIOptions) error {
	p := tea.NewProgram(NewModel(ctx, inputPath, opts), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.result != nil && !fm.result.Ok() {
		return errors.New(fm.result.Message())
	}
	return nil
}
