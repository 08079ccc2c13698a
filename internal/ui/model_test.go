package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/metastring/internal/catalog"
	"github.com/faizmokh/metastring/internal/files"
)

func newLoadedModel(t *testing.T, names ...string) Model {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	mgr, err := files.NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	m := NewModel(context.Background(), catalog.NewReader(mgr), "*.tif")
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelLoadsAndSummarizes(t *testing.T) {
	m := newLoadedModel(t,
		"2019-04-25-11-30_run-2_sec-1.tif",
		"2019-04-26_run-2__reactor-7.tif",
		"run-1_date-x.tif",
	)

	if m.loading {
		t.Fatalf("model still loading after records message")
	}
	if len(m.visible) != 3 {
		t.Fatalf("visible = %d, want 3", len(m.visible))
	}
	if !strings.Contains(m.statusLine, "3 files, 1 invalid, 1 with warnings.") {
		t.Fatalf("statusLine = %q", m.statusLine)
	}

	view := m.View()
	if !strings.Contains(view, "> ") || !strings.Contains(view, "2019-04-25-11-30_run-2_sec-1.tif") {
		t.Fatalf("view missing selected file: %q", view)
	}
	if !strings.Contains(view, "time: 11:30") || !strings.Contains(view, "run: 2") {
		t.Fatalf("view missing details: %q", view)
	}
}

func TestModelNavigationClampsSelection(t *testing.T) {
	m := newLoadedModel(t, "a-1.tif", "b-2.tif")

	m = press(t, m, "j", "down", "j")
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}
	if !strings.Contains(m.View(), "b: 2") {
		t.Fatalf("details should show second file: %q", m.View())
	}

	m = press(t, m, "k", "up")
	if m.selected != 0 {
		t.Fatalf("selected = %d, want 0", m.selected)
	}

	m = press(t, m, "G")
	if m.selected != 1 {
		t.Fatalf("selected after G = %d, want 1", m.selected)
	}
	m = press(t, m, "g")
	if m.selected != 0 {
		t.Fatalf("selected after g = %d, want 0", m.selected)
	}
}

func TestModelInvalidFilter(t *testing.T) {
	m := newLoadedModel(t, "a-1.tif", "bad.tif", "c-3.tif")

	m = press(t, m, "G", "i")
	if len(m.visible) != 1 || m.selected != 0 {
		t.Fatalf("visible = %v selected = %d, want one invalid file selected", m.visible, m.selected)
	}
	rec, ok := m.current()
	if !ok || rec.Name != "bad.tif" {
		t.Fatalf("current = %+v, want bad.tif", rec)
	}
	if !strings.Contains(m.View(), "invalid:") {
		t.Fatalf("view missing error details: %q", m.View())
	}

	m = press(t, m, "i")
	if len(m.visible) != 3 {
		t.Fatalf("visible after clearing filter = %d, want 3", len(m.visible))
	}
}

func TestModelEmptyDirectory(t *testing.T) {
	m := newLoadedModel(t)
	if !strings.Contains(m.View(), "(no matching files)") {
		t.Fatalf("unexpected view: %q", m.View())
	}
	m = press(t, m, "j", "i")
	if !strings.Contains(m.View(), "(no invalid files)") {
		t.Fatalf("unexpected view: %q", m.View())
	}
}

func TestModelReloadAndQuit(t *testing.T) {
	m := newLoadedModel(t, "a-1.tif")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(Model)
	if !m.loading || cmd == nil {
		t.Fatalf("reload should start loading and return a command")
	}
	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.loading || len(m.records) != 1 {
		t.Fatalf("reload did not finish: loading=%v records=%d", m.loading, len(m.records))
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c did not quit")
	}
}

func TestModelShowsLoadError(t *testing.T) {
	dir := t.TempDir()
	mgr, err := files.NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m := NewModel(context.Background(), catalog.NewReader(mgr), "[bad")
	next, _ := m.Update(m.Init()())
	m = next.(Model)
	if m.errorLine == "" || !strings.Contains(m.View(), "Failed to scan") {
		t.Fatalf("expected scan error, view: %q", m.View())
	}
}
