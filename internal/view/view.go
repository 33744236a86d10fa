// Package view derives the projected, read-only view of a task collection.
// It is pure: no store access, no presentation concerns.
package view

import "taskpad/internal/model"

// Visible returns the tasks that pass the filter, preserving collection order.
// Unknown filter values behave like FilterAll so a stale value can never
// produce an empty screen.
func Visible(tasks []model.Task, f model.Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(f, t) {
			out = append(out, t)
		}
	}
	return out
}

func matches(f model.Filter, t model.Task) bool {
	switch f {
	case model.FilterActive:
		return !t.Completed
	case model.FilterCompleted:
		return t.Completed
	default:
		return true
	}
}
