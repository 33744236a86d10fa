package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/model"
	"taskpad/internal/store"
	"taskpad/internal/view"
)

type editField int

const (
	editNone editField = iota
	editTitle
	editDesc
)

type appModel struct {
	ts *store.TaskStore
	st store.Store

	width  int
	height int
	theme  model.Theme

	rows   []row
	cursor int

	adding   bool
	addInput textinput.Model

	editing   editField
	editInput textinput.Model

	drag   dragState
	status string
}

func newAppModel(ts *store.TaskStore, st store.Store) *appModel {
	m := &appModel{
		ts:    ts,
		st:    st,
		theme: st.LoadTheme(),
		width: 80,
	}

	m.addInput = textinput.New()
	m.addInput.Prompt = ""
	m.addInput.Placeholder = "task title"
	m.addInput.CharLimit = 200

	m.editInput = textinput.New()
	m.editInput.Prompt = ""
	m.editInput.CharLimit = 500

	// The store re-renders through this hook after every mutation; the row
	// set is always a full rebuild of the current projection.
	ts.BindRenderer(m.refresh)
	m.refresh()
	return m
}

func (m *appModel) Init() tea.Cmd { return nil }

// refresh rebuilds the visible rows from the authoritative projection.
func (m *appModel) refresh() {
	m.rows = buildRows(view.Visible(m.ts.Tasks(), m.ts.Filter()))
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.addInput.Width = msg.Width - 8
		m.editInput.Width = msg.Width - titleCol - 4
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m *appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	if m.adding {
		switch msg.String() {
		case "enter":
			m.commitAdd()
			return m, nil
		case "esc":
			m.adding = false
			m.addInput.SetValue("")
			return m, nil
		default:
			var cmd tea.Cmd
			m.addInput, cmd = m.addInput.Update(msg)
			return m, cmd
		}
	}

	if m.editing != editNone {
		switch msg.String() {
		case "enter":
			m.blurEdit()
			return m, nil
		case "esc":
			// Abort: cosmetic only, display reverts to the stored value.
			m.editing = editNone
			return m, nil
		default:
			var cmd tea.Cmd
			m.editInput, cmd = m.editInput.Update(msg)
			return m, cmd
		}
	}

	if m.drag.active && msg.String() == "esc" {
		m.cancelDrag()
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "K":
		m.moveSelected(-1)
	case "J":
		m.moveSelected(1)
	case " ":
		if r, ok := m.selectedRow(); ok {
			m.ts.ToggleComplete(r.id)
		}
	case "a":
		m.adding = true
		m.addInput.SetValue("")
		m.addInput.Focus()
	case "enter", "e":
		m.startEdit(editTitle)
	case "E":
		m.startEdit(editDesc)
	case "d", "x":
		if r, ok := m.selectedRow(); ok {
			m.ts.Delete(r.id)
		}
	case "f":
		m.cycleFilter()
	case "1":
		m.ts.SetFilter("all")
	case "2":
		m.ts.SetFilter("active")
	case "3":
		m.ts.SetFilter("completed")
	case "t":
		m.toggleTheme()
	case "r":
		m.ts.Load()
	}
	return m, nil
}

func (m *appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		// A click is a blur for any in-progress inline edit.
		if m.editing != editNone {
			m.blurEdit()
		}
		if m.adding {
			m.commitAdd()
		}
		sp, ok := spanAt(m.currentSpans(), msg.Y)
		if !ok {
			return m, nil
		}
		idx := m.rowIndex(sp.id)
		switch zoneForX(msg.X, m.width) {
		case zoneCheckbox:
			m.cursor = idx
			m.ts.ToggleComplete(sp.id)
		case zoneDelete:
			m.ts.Delete(sp.id)
		case zoneHandle:
			m.cursor = idx
			m.startDrag(sp.id)
		case zoneTitle:
			m.cursor = idx
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.drag.active {
			return m, nil
		}
		spans := buildSpans(m.drag.order, m.rowHeights(), listTop)
		if !m.inListRegion(spans, msg.Y) {
			return m, nil
		}
		if sp, ok := spanAt(spans, msg.Y); ok && sp.id != m.drag.id {
			m.drag.anchor = sp.id
		} else {
			m.drag.anchor = ""
		}
		m.drag.order = hoverReposition(m.drag.order, spans, m.drag.id, msg.Y)
		return m, nil

	case tea.MouseActionRelease:
		if !m.drag.active {
			return m, nil
		}
		spans := buildSpans(m.drag.order, m.rowHeights(), listTop)
		if m.inListRegion(spans, msg.Y) {
			m.commitDrag()
		} else {
			// Dropped outside the list: no commit, restore authoritative order.
			m.cancelDrag()
		}
		return m, nil
	}
	return m, nil
}

// inListRegion reports whether y is over the list container: the rows plus
// one line of slack below them (the drop slot for "end of list").
func (m *appModel) inListRegion(spans []rowSpan, y int) bool {
	return y >= listTop && y <= spansEnd(spans)
}

func (m *appModel) View() string {
	lines := []string{m.renderHeader(), ""}

	order := m.currentOrder()
	byID := make(map[string]row, len(m.rows))
	for _, r := range m.rows {
		byID[r.id] = r
	}

	if len(order) == 0 {
		lines = append(lines, styleMuted().Render("  No tasks — press a to add one."))
	}
	for i, id := range order {
		r := byID[id]
		selected := i == m.cursor && !m.drag.active
		editingThis := selected && m.editing != editNone
		dragged := m.drag.active && id == m.drag.id
		anchor := m.drag.active && id == m.drag.anchor

		if editingThis && m.editing == editTitle {
			lines = append(lines, "  "+checkboxGlyph(r.completed)+" "+handleGlyph()+" "+m.editInput.View())
		} else {
			lines = append(lines, renderRowLine(r, m.width, selected, dragged, anchor))
		}

		if descVisible(r, editingThis && m.editing == editDesc) {
			if editingThis && m.editing == editDesc {
				lines = append(lines, strings.Repeat(" ", titleCol)+m.editInput.View())
			} else {
				lines = append(lines, renderDescLine(r.description, m.width, selected))
			}
		}
	}

	if m.adding {
		lines = append(lines, "", "  + "+m.addInput.View())
	}

	if preview := m.renderPreview(); preview != "" {
		lines = append(lines, "", preview)
	}

	if m.status != "" {
		lines = append(lines, "", styleMuted().Render("  "+m.status))
	}

	lines = append(lines, "", m.renderFooter())
	return strings.Join(lines, "\n")
}

func (m *appModel) renderHeader() string {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(
		fmt.Sprintf(" Taskpad  %d tasks · filter: %s · theme: %s", len(m.ts.Tasks()), m.ts.Filter(), m.theme))
}

func (m *appModel) renderFooter() string {
	help := " space toggle · a add · e title · E desc · d delete · drag " + handleGlyph() + " or J/K move · f filter · t theme · q quit"
	return styleMuted().Render(help)
}

func (m *appModel) renderPreview() string {
	if m.drag.active || m.editing != editNone || m.adding {
		return ""
	}
	r, ok := m.selectedRow()
	if !ok || strings.TrimSpace(r.description) == "" {
		return ""
	}
	w := m.width - 4
	if w > 80 {
		w = 80
	}
	return renderMarkdown(r.description, w)
}

func (m *appModel) selectedRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *appModel) rowIndex(id string) int {
	for i, r := range m.rows {
		if r.id == id {
			return i
		}
	}
	return 0
}

// currentOrder is the visual order: the live drag order while a gesture is in
// flight, the authoritative projection order otherwise.
func (m *appModel) currentOrder() []string {
	if m.drag.active {
		return m.drag.order
	}
	ids := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		ids = append(ids, r.id)
	}
	return ids
}

func (m *appModel) currentSpans() []rowSpan {
	return buildSpans(m.currentOrder(), m.rowHeights(), listTop)
}

func (m *appModel) rowHeights() map[string]int {
	hs := make(map[string]int, len(m.rows))
	for i, r := range m.rows {
		h := 1
		editingDesc := m.editing == editDesc && i == m.cursor
		if descVisible(r, editingDesc) {
			h = 2
		}
		hs[r.id] = h
	}
	return hs
}

func (m *appModel) commitAdd() {
	if _, ok := m.ts.Add(m.addInput.Value(), ""); !ok {
		m.status = "a task needs a title"
		return
	}
	m.adding = false
	m.addInput.SetValue("")
	m.cursor = len(m.rows) - 1
}

func (m *appModel) startEdit(f editField) {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	m.editing = f
	switch f {
	case editTitle:
		m.editInput.SetValue(r.title)
	case editDesc:
		m.editInput.SetValue(r.description)
	}
	m.editInput.CursorEnd()
	m.editInput.Focus()
}

// blurEdit commits an in-progress inline edit under the commit-on-blur rules:
// unchanged values never write, and titles that collapse to empty revert.
func (m *appModel) blurEdit() {
	r, ok := m.selectedRow()
	if !ok {
		m.editing = editNone
		return
	}
	switch m.editing {
	case editTitle:
		if v, commit := commitTitle(r.title, m.editInput.Value()); commit {
			m.ts.Edit(r.id, model.TaskPatch{Title: &v})
		}
	case editDesc:
		if v, commit := commitDescription(r.description, m.editInput.Value()); commit {
			m.ts.Edit(r.id, model.TaskPatch{Description: &v})
		}
	}
	m.editing = editNone
}

func (m *appModel) startDrag(id string) {
	if m.ts.Filter() != model.FilterAll {
		// Committing a filtered view would drop the hidden tasks.
		m.status = "reordering needs the all filter"
		return
	}
	m.drag = dragState{active: true, id: id, order: m.currentOrder()}
}

// commitDrag maps the live visual order to ids and makes it authoritative,
// then re-renders in full so displayed and stored order cannot diverge.
func (m *appModel) commitDrag() {
	m.ts.Reorder(m.drag.order)
	m.drag = dragState{}
	m.refresh()
}

func (m *appModel) cancelDrag() {
	m.drag = dragState{}
	m.refresh()
}

// moveSelected is the keyboard reorder path: one slot up or down through the
// same commit sequence as a drop.
func (m *appModel) moveSelected(delta int) {
	if m.ts.Filter() != model.FilterAll {
		m.status = "reordering needs the all filter"
		return
	}
	i := m.cursor
	j := i + delta
	if i < 0 || i >= len(m.rows) || j < 0 || j >= len(m.rows) {
		return
	}
	ids := m.currentOrder()
	ids[i], ids[j] = ids[j], ids[i]
	m.ts.Reorder(ids)
	m.refresh()
	m.cursor = j
}

func (m *appModel) cycleFilter() {
	switch m.ts.Filter() {
	case model.FilterAll:
		m.ts.SetFilter("active")
	case model.FilterActive:
		m.ts.SetFilter("completed")
	default:
		m.ts.SetFilter("all")
	}
}

func (m *appModel) toggleTheme() {
	if m.theme == model.ThemeDark {
		m.theme = model.ThemeLight
	} else {
		m.theme = model.ThemeDark
	}
	applyTheme(m.theme)
	if err := m.st.SaveTheme(m.theme); err != nil {
		m.status = "could not save theme: " + err.Error()
	}
}
