package store

import (
	"time"

	"github.com/nibzard/todoboard/internal/todo"
)

// Template is a static quick-add preset.
type Template struct {
	Name     string        `json:"name" yaml:"name"`
	Title    string        `json:"title" yaml:"title"`
	Category string        `json:"category" yaml:"category"`
	Priority todo.Priority `json:"priority" yaml:"priority"`
}

// DefaultTemplates returns the built-in quick-add templates.
func DefaultTemplates() []Template {
	return []Template{
		{Name: "standup", Title: "Daily standup", Category: "Work", Priority: todo.PriorityMedium},
		{Name: "groceries", Title: "Buy groceries", Category: "Shopping", Priority: todo.PriorityLow},
		{Name: "workout", Title: "Workout", Category: "Health", Priority: todo.PriorityMedium},
		{Name: "reading", Title: "Read for 30 minutes", Category: "Learning", Priority: todo.PriorityLow},
		{Name: "bills", Title: "Pay bills", Category: "Personal", Priority: todo.PriorityHigh},
	}
}

// NewItem builds a record from the template. Extra options are applied after
// the template's own fields, so they win.
func (t Template) NewItem(now time.Time, opts ...todo.Option) *todo.Item {
	base := []todo.Option{
		todo.WithCategory(t.Category),
		todo.WithPriority(t.Priority),
	}
	return todo.New(t.Title, now, append(base, opts...)...)
}
