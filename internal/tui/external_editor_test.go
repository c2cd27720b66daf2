package tui

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitShellWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"nano", []string{"nano"}},
		{"code --wait", []string{"code", "--wait"}},
		{"subl -n -w", []string{"subl", "-n", "-w"}},
		{"emacs -nw 'my file'", []string{"emacs", "-nw", "my file"}},
		{"vim -c \"set ft=markdown\"", []string{"vim", "-c", "set ft=markdown"}},
		{"/opt/My\\ Editor/bin/ed", []string{"/opt/My Editor/bin/ed"}},
	}
	for _, tt := range tests {
		if got := splitShellWords(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("splitShellWords(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplyExternalEditorResult_LoadsTextarea(t *testing.T) {
	m := newTestModel(t, "")
	path := filepath.Join(t.TempDir(), "edit.md")
	if err := os.WriteFile(path, []byte("from editor\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m.externalEditorPath = path
	m.externalEditorBefore = "before"

	m.applyExternalEditorResult(externalEditorDoneMsg{})

	if got := m.textarea.Value(); got != "from editor" {
		t.Fatalf("textarea: got %q", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("temp file should be removed")
	}
	if m.minibuffer == "" {
		t.Fatalf("expected a status message")
	}
}
