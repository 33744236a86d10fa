package store

import (
	"log"
	"strings"
	"time"

	"taskpad/internal/model"
)

// TaskStore owns the authoritative task collection and the active filter.
// All mutation goes through it; every mutating call applies the change in
// memory, persists the full collection, and invokes the bound render hook,
// in that order. Renderers hold no task state of their own.
//
// There is no ambient singleton: construct one explicitly and hand it to
// whatever needs it (TUI, CLI commands, tests).
type TaskStore struct {
	store  Store
	tasks  []model.Task
	filter model.Filter
	render func()

	// rev counts persisted changes; an operation that changes nothing
	// (idempotent edit, unknown id) must leave it untouched.
	rev uint64
}

func NewTaskStore(s Store) *TaskStore {
	return &TaskStore{
		store:  s,
		tasks:  []model.Task{},
		filter: model.FilterAll,
	}
}

// BindRenderer installs the re-render hook. Passing nil unbinds it.
func (ts *TaskStore) BindRenderer(fn func()) {
	ts.render = fn
}

// Load replaces the in-memory collection with the persisted one and resets
// the filter to all. Malformed persisted state degrades to an empty list.
func (ts *TaskStore) Load() {
	ts.tasks = ts.store.LoadTasks()
	ts.filter = model.FilterAll
	ts.rerender()
}

// Tasks returns the collection in display order. Callers must not mutate it.
func (ts *TaskStore) Tasks() []model.Task {
	return ts.tasks
}

func (ts *TaskStore) Filter() model.Filter {
	return ts.filter
}

// Revision increments once per persisted change.
func (ts *TaskStore) Revision() uint64 {
	return ts.rev
}

// Find returns a copy of the task with the given id.
func (ts *TaskStore) Find(id string) (model.Task, bool) {
	for _, t := range ts.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Add appends a new task with a fresh unique id. Titles that trim to empty
// are rejected: nothing is stored, persisted, or re-rendered.
func (ts *TaskStore) Add(title, description string) (model.Task, bool) {
	if strings.TrimSpace(title) == "" {
		return model.Task{}, false
	}
	t := model.Task{
		ID:          NewTaskID(ts.tasks),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	ts.tasks = append(ts.tasks, t)
	ts.persist()
	ts.rerender()
	return t, true
}

// Delete removes the task with the given id. Unknown ids are a no-op.
func (ts *TaskStore) Delete(id string) {
	for i := range ts.tasks {
		if ts.tasks[i].ID == id {
			ts.tasks = append(ts.tasks[:i], ts.tasks[i+1:]...)
			ts.persist()
			ts.rerender()
			return
		}
	}
}

// Edit applies a partial update to the task with the given id. Unknown ids
// and patches that change nothing are no-ops (no persist, no re-render).
func (ts *TaskStore) Edit(id string, p model.TaskPatch) bool {
	for i := range ts.tasks {
		if ts.tasks[i].ID != id {
			continue
		}
		if !ts.tasks[i].Apply(p) {
			return false
		}
		ts.persist()
		ts.rerender()
		return true
	}
	return false
}

// ToggleComplete flips the completion flag. Unknown ids are a no-op.
func (ts *TaskStore) ToggleComplete(id string) {
	for i := range ts.tasks {
		if ts.tasks[i].ID == id {
			ts.tasks[i].ToggleDone()
			ts.persist()
			ts.rerender()
			return
		}
	}
}

// Reorder rebuilds the collection in the order given by ids. Ids with no
// matching task are dropped, and tasks not mentioned are dropped too (the
// committed sequence is the whole collection). Persists, but does not
// re-render: the caller's presentation surface already shows this order
// and triggers its own full re-render after the commit.
func (ts *TaskStore) Reorder(ids []string) {
	byID := make(map[string]int, len(ts.tasks))
	for i, t := range ts.tasks {
		byID[t.ID] = i
	}
	next := make([]model.Task, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		next = append(next, ts.tasks[i])
	}
	ts.tasks = next
	ts.persist()
}

// SetFilter switches the active filter and re-renders. Values outside the
// closed set are ignored rather than producing a surprise all-or-nothing view.
func (ts *TaskStore) SetFilter(v string) bool {
	f, ok := model.ParseFilter(v)
	if !ok {
		return false
	}
	ts.filter = f
	ts.rerender()
	return true
}

func (ts *TaskStore) persist() {
	if err := ts.store.SaveTasks(ts.tasks); err != nil {
		// Best effort: a failed write leaves displayed state ahead of stored
		// state until the next successful persist. Never fatal.
		log.Printf("taskpad: persisting tasks: %v", err)
		return
	}
	ts.rev++
}

func (ts *TaskStore) rerender() {
	if ts.render != nil {
		ts.render()
	}
}
