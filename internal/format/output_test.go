package format

import (
	"strings"
	"testing"
)

func TestWriteJSON_Compact(t *testing.T) {
	var sb strings.Builder
	if err := WriteJSON(&sb, map[string]string{"id": "task-1"}, false); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got, want := sb.String(), "{\"id\":\"task-1\"}\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteJSON_Pretty(t *testing.T) {
	var sb strings.Builder
	if err := WriteJSON(&sb, []string{"a"}, true); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(sb.String(), "\n  \"a\"\n") {
		t.Fatalf("expected indented output, got %q", sb.String())
	}
}
