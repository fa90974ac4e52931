package store

import (
	"sort"
	"time"

	"github.com/nibzard/todoboard/internal/todo"
)

// WeekKeyLayout formats the Monday that starts a completion week.
const WeekKeyLayout = "2006-01-02"

// Stats summarises the store at a point in time.
type Stats struct {
	Total          int             `json:"total" yaml:"total"`
	Completed      int             `json:"completed" yaml:"completed"`
	Pending        int             `json:"pending" yaml:"pending"`
	Overdue        int             `json:"overdue" yaml:"overdue"`
	DueToday       int             `json:"due_today" yaml:"due_today"`
	CompletionRate float64         `json:"completion_rate" yaml:"completion_rate"`
	Categories     []CategoryStats `json:"categories" yaml:"categories"`
	Priorities     []PriorityStats `json:"priorities" yaml:"priorities"`
}

// CategoryStats counts the records of one category.
type CategoryStats struct {
	Category       string  `json:"category" yaml:"category"`
	Total          int     `json:"total" yaml:"total"`
	Completed      int     `json:"completed" yaml:"completed"`
	CompletionRate float64 `json:"completion_rate" yaml:"completion_rate"`
}

// PriorityStats counts the records of one priority.
type PriorityStats struct {
	Priority  todo.Priority `json:"priority" yaml:"priority"`
	Total     int           `json:"total" yaml:"total"`
	Completed int           `json:"completed" yaml:"completed"`
	Pending   int           `json:"pending" yaml:"pending"`
}

// Insights are productivity figures derived from completed records.
type Insights struct {
	WeeklyCompletions      map[string]int `json:"weekly_completions" yaml:"weekly_completions"`
	AvgCompletionTimeHours float64        `json:"avg_completion_time_hours" yaml:"avg_completion_time_hours"`
	MostProductiveCategory string         `json:"most_productive_category" yaml:"most_productive_category"`
}

// Empty reports whether the insights carry no data.
func (in Insights) Empty() bool {
	return len(in.WeeklyCompletions) == 0 && in.AvgCompletionTimeHours == 0 && in.MostProductiveCategory == ""
}

// Weeks returns the week keys in chronological order.
func (in Insights) Weeks() []string {
	weeks := make([]string, 0, len(in.WeeklyCompletions))
	for w := range in.WeeklyCompletions {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)
	return weeks
}

// Stats computes the summary from the current records.
func (s *Store) Stats(now time.Time) Stats {
	st := Stats{Total: len(s.items)}
	for _, it := range s.items {
		if it.Completed {
			st.Completed++
		}
		if it.IsOverdue(now) {
			st.Overdue++
		}
		if !it.Completed && it.DueOn(now) {
			st.DueToday++
		}
	}
	st.Pending = st.Total - st.Completed
	st.CompletionRate = percent(st.Completed, st.Total)
	st.Categories = s.categoryStats()
	st.Priorities = s.priorityStats()
	return st
}

func (s *Store) categoryStats() []CategoryStats {
	out := make([]CategoryStats, 0, len(s.categories))
	for _, c := range s.categories {
		cs := CategoryStats{Category: c}
		for _, it := range s.items {
			if it.Category != c {
				continue
			}
			cs.Total++
			if it.Completed {
				cs.Completed++
			}
		}
		cs.CompletionRate = percent(cs.Completed, cs.Total)
		out = append(out, cs)
	}
	return out
}

func (s *Store) priorityStats() []PriorityStats {
	priorities := todo.Priorities()
	out := make([]PriorityStats, 0, len(priorities))
	for _, p := range priorities {
		ps := PriorityStats{Priority: p}
		for _, it := range s.items {
			if it.Priority != p {
				continue
			}
			ps.Total++
			if it.Completed {
				ps.Completed++
			}
		}
		ps.Pending = ps.Total - ps.Completed
		out = append(out, ps)
	}
	return out
}

// Insights computes productivity figures. An empty store yields the zero
// value.
func (s *Store) Insights() Insights {
	if len(s.items) == 0 {
		return Insights{}
	}

	in := Insights{WeeklyCompletions: make(map[string]int)}
	var totalHours float64
	var timed int
	for _, it := range s.items {
		if !it.Completed || it.CompletedAt == nil {
			continue
		}
		in.WeeklyCompletions[WeekStart(*it.CompletedAt).Format(WeekKeyLayout)]++
		totalHours += it.CompletedAt.Sub(it.CreatedAt).Hours()
		timed++
	}
	if timed > 0 {
		in.AvgCompletionTimeHours = totalHours / float64(timed)
	}

	best := -1
	for _, cs := range s.categoryStats() {
		if cs.Completed > best {
			best = cs.Completed
			in.MostProductiveCategory = cs.Category
		}
	}
	return in
}

// WeekStart returns midnight of the Monday on or before t, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	return startOfDay(t).AddDate(0, 0, -offset+1)
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}
