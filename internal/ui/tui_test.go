package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todoboard/internal/store"
	"github.com/nibzard/todoboard/internal/todo"
)

var testNow = time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (*tuiModel, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todos.json")
	s := store.New()
	s.Add(todo.New("first", testNow, todo.WithID("11111111-a")))
	late := todo.New("late", testNow, todo.WithID("22222222-b"), todo.WithDueDate(testNow.Add(-time.Hour)))
	s.Add(late)
	done := todo.New("done", testNow, todo.WithID("33333333-c"))
	done.MarkCompleted(testNow)
	s.Add(done)
	return newTUIModel(s, path, WithClock(fixedClock)), path
}

func send(m *tuiModel, keys ...string) {
	for _, k := range keys {
		m.Update(key(k))
	}
}

func loadTitles(t *testing.T, path string) []string {
	t.Helper()
	s, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var out []string
	for _, it := range s.Items() {
		out = append(out, it.Title)
	}
	return out
}

func TestCursorMovement(t *testing.T) {
	m, _ := newTestModel(t)
	send(m, "k")
	if m.cursor != 0 {
		t.Errorf("cursor moved above top: %d", m.cursor)
	}
	send(m, "j", "j", "j", "j")
	if m.cursor != 2 {
		t.Errorf("cursor: got %d, want 2", m.cursor)
	}
	send(m, "k")
	if m.cursor != 1 {
		t.Errorf("cursor: got %d, want 1", m.cursor)
	}
}

func TestToggleSaves(t *testing.T) {
	m, path := newTestModel(t)
	send(m, " ")

	it, _ := m.store.Get("11111111-a")
	if !it.Completed || it.CompletedAt == nil || !it.CompletedAt.Equal(testNow) {
		t.Errorf("record not completed: %+v", it)
	}
	if !strings.Contains(m.status, "Completed") {
		t.Errorf("status: got %q", m.status)
	}
	s, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	saved, _ := s.Get("11111111-a")
	if !saved.Completed {
		t.Error("toggle was not saved")
	}

	send(m, " ")
	if it.Completed || it.CompletedAt != nil {
		t.Errorf("second toggle should reopen: %+v", it)
	}
}

func TestDeleteAndClear(t *testing.T) {
	m, path := newTestModel(t)
	send(m, "j", "d")
	if got := loadTitles(t, path); strings.Join(got, ",") != "first,done" {
		t.Errorf("after delete: %v", got)
	}

	send(m, "c")
	if got := loadTitles(t, path); strings.Join(got, ",") != "first" {
		t.Errorf("after clear: %v", got)
	}
	if m.cursor != 0 {
		t.Errorf("cursor not clamped: %d", m.cursor)
	}
}

func TestViewSwitching(t *testing.T) {
	m, _ := newTestModel(t)
	tests := []struct {
		key  string
		view store.View
		want int
	}{
		{"1", store.ViewPending, 2},
		{"2", store.ViewCompleted, 1},
		{"3", store.ViewOverdue, 1},
		{"4", store.ViewToday, 1},
		{"5", store.ViewWeek, 1},
		{"0", store.ViewAll, 3},
	}
	for _, tt := range tests {
		send(m, tt.key)
		if m.view != tt.view || len(m.items) != tt.want {
			t.Errorf("key %s: got view %s with %d items, want %s with %d", tt.key, m.view, len(m.items), tt.view, tt.want)
		}
	}
}

func TestReload(t *testing.T) {
	m, path := newTestModel(t)
	other := store.New()
	other.Add(todo.New("from disk", testNow))
	if err := other.Save(path); err != nil {
		t.Fatal(err)
	}

	send(m, "r")
	if m.err != nil {
		t.Fatalf("reload error: %v", m.err)
	}
	if len(m.items) != 1 || m.items[0].Title != "from disk" {
		t.Errorf("items after reload: %d", len(m.items))
	}
}

func TestSaveErrorShownInStatus(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := store.New()
	s.Add(todo.New("x", testNow))
	m := newTUIModel(s, filepath.Join(blocker, "todos.json"), WithClock(fixedClock))

	send(m, " ")
	if m.err == nil {
		t.Fatal("expected save error")
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("error not shown in view")
	}
	if it := s.Items()[0]; !it.Completed {
		t.Error("in-memory change should survive a failed save")
	}
}

func TestViewRendering(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	for _, want := range []string{"todoboard", "Overview", "Total: 3", "Overdue: 1", "first", "late", "[x]", "Press h for help"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	send(m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not shown")
	}
	send(m, "h")
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not toggled off")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer reported as TTY")
	}
}
