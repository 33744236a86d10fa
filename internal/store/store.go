package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"taskpad/internal/model"
)

// The persisted surface is two fixed keys in the KV medium:
// tasksKey holds the JSON-serialized array of task records,
// themeKey holds "dark" (anything else means light).
const (
	tasksKey = "tasks"
	themeKey = "theme"
)

// Store is the persistence adapter between the task collection and the KV medium.
type Store struct {
	KV KV
}

// DefaultDir resolves the state directory: TASKPAD_DIR env, else ~/.taskpad.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TASKPAD_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskpad"), nil
}

// LoadTasks reads the persisted collection. Missing, unparseable, or
// non-array data degrades to an empty collection; startup never fails on
// bad persisted state.
func (s Store) LoadTasks() []model.Task {
	raw, ok, err := s.KV.Get(tasksKey)
	if err != nil {
		log.Printf("taskpad: reading %q: %v", tasksKey, err)
		return []model.Task{}
	}
	if !ok {
		return []model.Task{}
	}

	// The top-level shape must be an array before we map records out of it.
	var top json.RawMessage
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		log.Printf("taskpad: malformed %q data, starting empty: %v", tasksKey, err)
		return []model.Task{}
	}
	trimmed := strings.TrimSpace(string(top))
	if !strings.HasPrefix(trimmed, "[") {
		log.Printf("taskpad: %q is not an array, starting empty", tasksKey)
		return []model.Task{}
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		log.Printf("taskpad: malformed %q records, starting empty: %v", tasksKey, err)
		return []model.Task{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks
}

// SaveTasks rewrites the full collection.
func (s Store) SaveTasks(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return s.KV.Set(tasksKey, string(b))
}

// LoadTheme returns the persisted display mode. Missing or unknown values
// mean light.
func (s Store) LoadTheme() model.Theme {
	v, ok, err := s.KV.Get(themeKey)
	if err != nil || !ok {
		return model.ThemeLight
	}
	return model.ParseTheme(v)
}

func (s Store) SaveTheme(th model.Theme) error {
	return s.KV.Set(themeKey, string(th))
}
