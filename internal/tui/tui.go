// Package tui renders the task list into a terminal and translates key and
// mouse input into store operations.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/store"
)

// Run starts the interactive list. Mouse reporting is required for the
// drag-reorder gesture.
func Run(ts *store.TaskStore, st store.Store) error {
	applyColorProfilePreference()
	applyTheme(st.LoadTheme())

	p := tea.NewProgram(newAppModel(ts, st), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
