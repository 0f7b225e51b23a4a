// SPDX-License-Identifier: Apache-2.0

// Package ui renders the glucose console: the latest reading as a large
// banner figure colored by a three-band threshold policy, with a spinner
// while the first poll is still in flight.
package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"glucoterm/internal/logger"
	"glucoterm/internal/state"
)

// UI owns the bubbletea program for the console.
type UI struct {
	log     *logger.Logger
	program *tea.Program
}

// New builds the console UI around the shared state store.
func New(store *state.Store, log *logger.Logger) *UI {
	if log == nil {
		log = logger.Nop()
	}
	return &UI{
		log:     log,
		program: tea.NewProgram(NewModel(store), tea.WithAltScreen()),
	}
}

// Run starts the program and blocks until the user quits or ctx is
// cancelled. Context cancellation is a clean shutdown, not an error.
func (u *UI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		u.program.Quit()
	}()

	if _, err := u.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// Notify schedules a redraw after the state store changed. Safe to call
// from any goroutine, including before Run has started.
func (u *UI) Notify() {
	go u.program.Send(RefreshedMsg{})
}
