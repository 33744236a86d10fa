package tui

import "strings"

// Commit-on-blur rules for inline edits.
//
// Titles: an edit that collapses to empty is discarded and the display
// reverts to the stored value. Descriptions: empty is a legitimate value
// (it hides the line until the field next receives focus). Both fields only
// commit when the edited value differs from the stored one, so an untouched
// blur never writes.

// commitTitle reports whether an edited title should be committed.
func commitTitle(stored, edited string) (string, bool) {
	if strings.TrimSpace(edited) == "" {
		return stored, false
	}
	if edited == stored {
		return stored, false
	}
	return edited, true
}

// commitDescription reports whether an edited description should be committed.
func commitDescription(stored, edited string) (string, bool) {
	if edited == stored {
		return stored, false
	}
	return edited, true
}
