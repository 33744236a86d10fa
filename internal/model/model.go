package model

import (
	"strings"
	"time"
)

// Filter selects which subset of the task collection is projected to the view.
// It is session-local state: a fresh load always starts at FilterAll.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter validates s against the closed filter set.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterAll:
		return FilterAll, true
	case FilterActive:
		return FilterActive, true
	case FilterCompleted:
		return FilterCompleted, true
	default:
		return "", false
	}
}

// Theme is the persisted display mode. Anything other than "dark" means light.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) Theme {
	if strings.ToLower(strings.TrimSpace(s)) == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// Task is a single user-created item. ID is assigned at creation and immutable;
// it is the sole lookup key for edit/delete/toggle/reorder.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
}

// Apply copies the set fields of p onto t and reports whether anything changed.
func (t *Task) Apply(p TaskPatch) bool {
	changed := false
	if p.Title != nil && *p.Title != t.Title {
		t.Title = *p.Title
		changed = true
	}
	if p.Description != nil && *p.Description != t.Description {
		t.Description = *p.Description
		changed = true
	}
	return changed
}

// ToggleDone flips the completion flag.
func (t *Task) ToggleDone() {
	t.Completed = !t.Completed
}
