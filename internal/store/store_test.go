package store

import (
	"errors"
	"testing"
	"time"

	"github.com/nibzard/todoboard/internal/todo"
)

var testNow = time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC) // a Wednesday

func newTestStore(items ...*todo.Item) *Store {
	s := New()
	for _, it := range items {
		s.Add(it)
	}
	return s
}

func TestNewDefaults(t *testing.T) {
	s := New()
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
	cats := s.Categories()
	if len(cats) != 6 || cats[0] != todo.DefaultCategory {
		t.Errorf("Categories: got %v", cats)
	}
	if len(s.Templates()) != len(DefaultTemplates()) {
		t.Errorf("Templates: got %d, want %d", len(s.Templates()), len(DefaultTemplates()))
	}
}

func TestWithCategories(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "replaces list", in: []string{"Home", "Work"}, want: []string{"Home", "Work"}},
		{name: "trims and dedups", in: []string{" Home ", "Home", "", "Work"}, want: []string{"Home", "Work"}},
		{name: "empty keeps default", in: nil, want: DefaultCategories()},
		{name: "blank keeps default", in: []string{" ", ""}, want: DefaultCategories()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(WithCategories(tt.in...)).Categories()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d]: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAddKeepsOrder(t *testing.T) {
	a := todo.New("a", testNow)
	b := todo.New("b", testNow)
	c := todo.New("c", testNow)
	s := newTestStore(a, b, c)

	items := s.Items()
	if len(items) != 3 {
		t.Fatalf("Len: got %d, want 3", len(items))
	}
	for i, want := range []string{"a", "b", "c"} {
		if items[i].Title != want {
			t.Errorf("items[%d]: got %q, want %q", i, items[i].Title, want)
		}
	}

	// Items returns a copy of the slice.
	items[0] = nil
	if s.Items()[0] == nil {
		t.Error("Items exposed the internal slice")
	}
}

func TestRemove(t *testing.T) {
	a := todo.New("a", testNow)
	b := todo.New("b", testNow)
	s := newTestStore(a, b)

	if !s.Remove(a.ID) {
		t.Fatal("Remove returned false for existing id")
	}
	if s.Len() != 1 || s.Items()[0] != b {
		t.Errorf("after Remove: got %d items", s.Len())
	}
	if s.Remove("missing") {
		t.Error("Remove returned true for unknown id")
	}
	if s.Len() != 1 {
		t.Errorf("unknown id changed the store: %d items", s.Len())
	}
}

func TestClearCompleted(t *testing.T) {
	a := todo.New("a", testNow)
	b := todo.New("b", testNow)
	c := todo.New("c", testNow)
	d := todo.New("d", testNow)
	b.MarkCompleted(testNow)
	d.MarkCompleted(testNow)
	s := newTestStore(a, b, c, d)

	if got := s.ClearCompleted(); got != 2 {
		t.Errorf("ClearCompleted: got %d, want 2", got)
	}
	items := s.Items()
	if len(items) != 2 || items[0] != a || items[1] != c {
		t.Errorf("remaining order wrong: %v", titles(items))
	}
	if got := s.ClearCompleted(); got != 0 {
		t.Errorf("second ClearCompleted: got %d, want 0", got)
	}
}

func TestResolve(t *testing.T) {
	a := todo.New("a", testNow, todo.WithID("abc123"))
	b := todo.New("b", testNow, todo.WithID("abd456"))
	c := todo.New("c", testNow, todo.WithID("xyz"))
	s := newTestStore(a, b, c)

	tests := []struct {
		ref     string
		want    *todo.Item
		wantErr error
	}{
		{ref: "abc123", want: a},
		{ref: "abd", want: b},
		{ref: "x", want: c},
		{ref: "ab", wantErr: ErrAmbiguous},
		{ref: "nope", wantErr: ErrNotFound},
		{ref: "", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := s.Resolve(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got.Title, tt.want.Title)
			}
		})
	}
}

func TestAddFromTemplate(t *testing.T) {
	s := New()
	item, err := s.AddFromTemplate("Groceries", testNow, todo.WithTags("errand"))
	if err != nil {
		t.Fatalf("AddFromTemplate failed: %v", err)
	}
	if item.Title != "Buy groceries" || item.Category != "Shopping" || item.Priority != todo.PriorityLow {
		t.Errorf("unexpected item: %+v", item)
	}
	if len(item.Tags) != 1 || item.Tags[0] != "errand" {
		t.Errorf("Tags: got %v", item.Tags)
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}

	_, err = s.AddFromTemplate("nope", testNow)
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("unknown template: got %v, want ErrUnknownTemplate", err)
	}
}

func TestTemplateOptionsOverride(t *testing.T) {
	tpl := Template{Name: "x", Title: "X", Category: "Work", Priority: todo.PriorityLow}
	item := tpl.NewItem(testNow, todo.WithPriority(todo.PriorityHigh))
	if item.Priority != todo.PriorityHigh {
		t.Errorf("Priority: got %s, want High", item.Priority)
	}
	if item.Category != "Work" {
		t.Errorf("Category: got %s, want Work", item.Category)
	}
}

func TestWithTemplates(t *testing.T) {
	s := New(WithTemplates(Template{Name: "deploy", Title: "Deploy", Category: "Work", Priority: todo.PriorityHigh}))
	if _, ok := s.Template("standup"); ok {
		t.Error("default template survived replacement")
	}
	if _, ok := s.Template("DEPLOY"); !ok {
		t.Error("Template lookup should ignore case")
	}
}

func titles(items []*todo.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}
