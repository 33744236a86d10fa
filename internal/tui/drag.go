package tui

// Drag-reorder reconciliation.
//
// A drag gesture moves one visible row through the list while the pointer is
// held: idle -> dragging (press on the handle cell marks the source row) ->
// hover-reposition on every motion event -> dropped (release commits the
// visual order to the store) -> idle. Until the drop commit, every
// rearrangement is cosmetic: a cancelled drag leaves the store untouched and
// the next rebuild restores the authoritative order.

type dragState struct {
	active bool
	id     string
	// order is the live visual order of visible row ids, rearranged on every
	// hover. It becomes authoritative only at drop time.
	order []string
	// anchor is the row currently acting as drop anchor, for the hover marker.
	anchor string
}

// rowSpan is the vertical extent of one rendered row: terminal lines
// [top, top+height) in the current frame.
type rowSpan struct {
	id     string
	top    int
	height int
}

// buildSpans lays out rows in visual order starting at the given top line.
func buildSpans(order []string, heightByID map[string]int, top int) []rowSpan {
	spans := make([]rowSpan, 0, len(order))
	y := top
	for _, id := range order {
		h := heightByID[id]
		if h < 1 {
			h = 1
		}
		spans = append(spans, rowSpan{id: id, top: y, height: h})
		y += h
	}
	return spans
}

// spanAt returns the span containing terminal line y.
func spanAt(spans []rowSpan, y int) (rowSpan, bool) {
	for _, sp := range spans {
		if y >= sp.top && y < sp.top+sp.height {
			return sp, true
		}
	}
	return rowSpan{}, false
}

// spansEnd returns the first line below the laid-out rows.
func spansEnd(spans []rowSpan) int {
	if len(spans) == 0 {
		return 0
	}
	last := spans[len(spans)-1]
	return last.top + last.height
}

// hoverReposition recomputes the visual order for a drag-over event at line y:
// the dragged row lands before the first other row whose vertical midpoint is
// still below the pointer, i.e. a row's midpoint decides before/after for the
// pointer hovering it. A pointer below every midpoint sends the dragged row to
// the end. Midpoints are compared at doubled resolution so two-line rows split
// cleanly at their middle.
func hoverReposition(order []string, spans []rowSpan, draggedID string, y int) []string {
	dragged := false
	for _, id := range order {
		if id == draggedID {
			dragged = true
			break
		}
	}
	if !dragged {
		return order
	}

	insertBefore := "" // empty means append at the end
	for _, sp := range spans {
		if sp.id == draggedID {
			continue
		}
		if 2*y < 2*sp.top+sp.height {
			insertBefore = sp.id
			break
		}
	}

	out := make([]string, 0, len(order))
	for _, id := range order {
		if id == draggedID {
			continue
		}
		if id == insertBefore {
			out = append(out, draggedID)
		}
		out = append(out, id)
	}
	if insertBefore == "" {
		out = append(out, draggedID)
	}
	return out
}
