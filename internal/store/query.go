package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/todoboard/internal/todo"
)

// View names a filtered listing of the store.
type View string

const (
	ViewAll       View = "all"
	ViewPending   View = "pending"
	ViewCompleted View = "completed"
	ViewOverdue   View = "overdue"
	ViewToday     View = "today"
	ViewWeek      View = "week"
)

// Views returns every view in display order.
func Views() []View {
	return []View{ViewAll, ViewPending, ViewCompleted, ViewOverdue, ViewToday, ViewWeek}
}

// ParseView parses a view name. An empty name is ViewAll.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ViewAll, nil
	case "pending", "open", "todo":
		return ViewPending, nil
	case "completed", "done":
		return ViewCompleted, nil
	case "overdue":
		return ViewOverdue, nil
	case "today":
		return ViewToday, nil
	case "week":
		return ViewWeek, nil
	default:
		return "", fmt.Errorf("invalid view %q, must be one of: all, pending, completed, overdue, today, week", s)
	}
}

// Select returns the records in the given view.
func (s *Store) Select(v View, now time.Time) []*todo.Item {
	switch v {
	case ViewPending:
		return s.Pending()
	case ViewCompleted:
		return s.Completed()
	case ViewOverdue:
		return s.Overdue(now)
	case ViewToday:
		return s.DueToday(now)
	case ViewWeek:
		return s.DueThisWeek(now)
	default:
		return s.Items()
	}
}

func (s *Store) filter(keep func(*todo.Item) bool) []*todo.Item {
	var out []*todo.Item
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Completed returns the completed records.
func (s *Store) Completed() []*todo.Item {
	return s.filter(func(it *todo.Item) bool { return it.Completed })
}

// Pending returns the records not yet completed.
func (s *Store) Pending() []*todo.Item {
	return s.filter(func(it *todo.Item) bool { return !it.Completed })
}

// ByPriority returns the records with priority p.
func (s *Store) ByPriority(p todo.Priority) []*todo.Item {
	return s.filter(func(it *todo.Item) bool { return it.Priority == p })
}

// ByCategory returns the records in category c.
func (s *Store) ByCategory(c string) []*todo.Item {
	return s.filter(func(it *todo.Item) bool { return it.Category == c })
}

// Overdue returns the open records past their deadline at now.
func (s *Store) Overdue(now time.Time) []*todo.Item {
	return s.filter(func(it *todo.Item) bool { return it.IsOverdue(now) })
}

// DueToday returns the open records due on now's calendar day.
func (s *Store) DueToday(now time.Time) []*todo.Item {
	return s.filter(func(it *todo.Item) bool {
		return !it.Completed && it.DueOn(now)
	})
}

// DueThisWeek returns the open records due between today and seven days from
// today, both calendar days inclusive.
func (s *Store) DueThisWeek(now time.Time) []*todo.Item {
	today := startOfDay(now)
	last := today.AddDate(0, 0, 7)
	return s.filter(func(it *todo.Item) bool {
		if it.Completed || it.DueDate == nil {
			return false
		}
		day := startOfDay(it.DueDate.In(now.Location()))
		return !day.Before(today) && !day.After(last)
	})
}

// Search returns the records whose title, description or tags contain query,
// ignoring case.
func (s *Store) Search(query string) []*todo.Item {
	return s.filter(func(it *todo.Item) bool { return it.Matches(query) })
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
