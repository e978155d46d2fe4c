package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram wraps m in a program on the alternate screen that also stops
// when ctx is done. Extra options are applied after the defaults.
func NewProgram(ctx context.Context, m Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}, opts...)
	return tea.NewProgram(m, opts...)
}

// Wait runs p until it quits and returns the final model. A program killed
// because ctx ended is normal shutdown, not an error.
func Wait(ctx context.Context, p *tea.Program, initial Model) (Model, error) {
	final, err := p.Run()
	if err != nil {
		if !errors.Is(err, tea.ErrProgramKilled) || ctx.Err() == nil {
			return initial, fmt.Errorf("tui: %w", err)
		}
	}
	if fm, ok := final.(Model); ok {
		return fm, nil
	}
	return initial, nil
}
