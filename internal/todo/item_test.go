package todo

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

func TestNewDefaults(t *testing.T) {
	it := New("Buy milk", testNow)

	if it.ID == "" {
		t.Error("expected generated ID")
	}
	if it.Priority != PriorityMedium {
		t.Errorf("Priority: got %q, want %q", it.Priority, PriorityMedium)
	}
	if it.Category != DefaultCategory {
		t.Errorf("Category: got %q, want %q", it.Category, DefaultCategory)
	}
	if it.Description != "" {
		t.Errorf("Description: got %q, want empty", it.Description)
	}
	if it.Completed || it.CompletedAt != nil {
		t.Error("new item should be pending")
	}
	if !it.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt: got %v, want %v", it.CreatedAt, testNow)
	}
	if it.Tags != nil {
		t.Errorf("Tags: got %v, want nil", it.Tags)
	}
}

func TestNewUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New("x", testNow).ID
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestNewOptions(t *testing.T) {
	due := testNow.Add(48 * time.Hour)
	it := New("Report", testNow,
		WithID("fixed"),
		WithDescription("quarterly"),
		WithPriority(PriorityHigh),
		WithCategory("Work"),
		WithTags("finance", " ", "q2"),
		WithDueDate(due),
		WithEstimate(2.5),
	)

	if it.ID != "fixed" {
		t.Errorf("ID: got %q, want fixed", it.ID)
	}
	if it.Priority != PriorityHigh {
		t.Errorf("Priority: got %q", it.Priority)
	}
	if it.Category != "Work" {
		t.Errorf("Category: got %q", it.Category)
	}
	if len(it.Tags) != 2 || it.Tags[0] != "finance" || it.Tags[1] != "q2" {
		t.Errorf("Tags: got %v", it.Tags)
	}
	if it.DueDate == nil || !it.DueDate.Equal(due) {
		t.Errorf("DueDate: got %v, want %v", it.DueDate, due)
	}
	if it.EstimatedTime == nil || *it.EstimatedTime != 2.5 {
		t.Errorf("EstimatedTime: got %v", it.EstimatedTime)
	}

	t.Run("invalid priority keeps default", func(t *testing.T) {
		it := New("x", testNow, WithPriority("Urgent"))
		if it.Priority != PriorityMedium {
			t.Errorf("Priority: got %q", it.Priority)
		}
	})

	t.Run("blank category keeps default", func(t *testing.T) {
		it := New("x", testNow, WithCategory("  "))
		if it.Category != DefaultCategory {
			t.Errorf("Category: got %q", it.Category)
		}
	})
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"High", PriorityHigh, false},
		{"high", PriorityHigh, false},
		{"H", PriorityHigh, false},
		{"MEDIUM", PriorityMedium, false},
		{"m", PriorityMedium, false},
		{" low ", PriorityLow, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePriority(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompletionInvariant(t *testing.T) {
	it := New("Task", testNow)
	later := testNow.Add(time.Hour)

	steps := []struct {
		name string
		op   func()
		want bool
	}{
		{"mark completed", func() { it.MarkCompleted(testNow) }, true},
		{"mark completed again", func() { it.MarkCompleted(later) }, true},
		{"mark uncompleted", func() { it.MarkUncompleted() }, false},
		{"mark uncompleted again", func() { it.MarkUncompleted() }, false},
		{"toggle on", func() { it.ToggleCompleted(later) }, true},
		{"toggle off", func() { it.ToggleCompleted(later) }, false},
	}

	for _, step := range steps {
		step.op()
		if it.Completed != step.want {
			t.Errorf("%s: Completed = %v, want %v", step.name, it.Completed, step.want)
		}
		if it.Completed != (it.CompletedAt != nil) {
			t.Errorf("%s: invariant broken: completed=%v completed_at=%v", step.name, it.Completed, it.CompletedAt)
		}
	}
}

func TestMarkCompletedRefreshesTimestamp(t *testing.T) {
	it := New("Task", testNow)
	it.MarkCompleted(testNow)
	later := testNow.Add(2 * time.Hour)
	it.MarkCompleted(later)

	if it.CompletedAt == nil || !it.CompletedAt.Equal(later) {
		t.Errorf("CompletedAt: got %v, want %v", it.CompletedAt, later)
	}
}

func TestSubtasks(t *testing.T) {
	it := New("Move house", testNow)

	if got := it.SubtaskProgress(); got != 0 {
		t.Errorf("progress with no subtasks: got %v, want 0", got)
	}

	a := it.AddSubtask("Pack", testNow)
	b := it.AddSubtask("Rent van", testNow)
	it.AddSubtask("Clean", testNow)
	it.AddSubtask("Hand keys", testNow)

	if a.ID == b.ID {
		t.Fatal("subtask ids must be unique")
	}
	if a.Completed {
		t.Error("new subtask should be pending")
	}
	if !a.CreatedAt.Equal(testNow) {
		t.Errorf("subtask CreatedAt: got %v", a.CreatedAt)
	}

	if !it.ToggleSubtask(a.ID) {
		t.Fatal("ToggleSubtask returned false for existing id")
	}
	if got := it.SubtaskProgress(); got != 25 {
		t.Errorf("progress 1/4: got %v, want 25", got)
	}

	it.ToggleSubtask(b.ID)
	if got := it.SubtaskProgress(); got != 50 {
		t.Errorf("progress 2/4: got %v, want 50", got)
	}

	it.ToggleSubtask(b.ID)
	if got := it.SubtaskProgress(); got != 25 {
		t.Errorf("progress after untoggle: got %v, want 25", got)
	}

	if it.ToggleSubtask("missing") {
		t.Error("ToggleSubtask returned true for unknown id")
	}
	if got := it.SubtaskProgress(); got != 25 {
		t.Errorf("unknown toggle changed progress: got %v", got)
	}

	for _, st := range it.Subtasks {
		if !st.Completed {
			it.ToggleSubtask(st.ID)
		}
	}
	if got := it.SubtaskProgress(); got != 100 {
		t.Errorf("progress all done: got %v, want 100", got)
	}
}

func TestFindSubtask(t *testing.T) {
	it := New("x", testNow)
	it.Subtasks = []Subtask{
		{ID: "abc123", Title: "one"},
		{ID: "abd456", Title: "two"},
	}

	tests := []struct {
		ref   string
		want  string
		found bool
	}{
		{"abc123", "one", true},
		{"abd", "two", true},
		{"ab", "", false},
		{"zzz", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		st, ok := it.FindSubtask(tt.ref)
		if ok != tt.found {
			t.Errorf("FindSubtask(%q) found = %v, want %v", tt.ref, ok, tt.found)
			continue
		}
		if ok && st.Title != tt.want {
			t.Errorf("FindSubtask(%q) = %q, want %q", tt.ref, st.Title, tt.want)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)

	tests := []struct {
		name      string
		item      *Item
		completed bool
		want      bool
	}{
		{"no due date", New("a", testNow), false, false},
		{"due in past", New("b", testNow, WithDueDate(past)), false, true},
		{"due in future", New("c", testNow, WithDueDate(future)), false, false},
		{"due exactly now", New("d", testNow, WithDueDate(testNow)), false, false},
		{"completed past due", New("e", testNow, WithDueDate(past)), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.completed {
				tt.item.MarkCompleted(testNow)
			}
			if got := tt.item.IsOverdue(testNow); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysUntilDue(t *testing.T) {
	tests := []struct {
		name   string
		offset time.Duration
		want   int
	}{
		{"three days ahead", 72 * time.Hour, 3},
		{"just under two days", 47 * time.Hour, 1},
		{"later today", 2 * time.Hour, 0},
		{"an hour ago", -time.Hour, -1},
		{"exactly one day ago", -24 * time.Hour, -1},
		{"25 hours ago", -25 * time.Hour, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := New("x", testNow, WithDueDate(testNow.Add(tt.offset)))
			got, ok := it.DaysUntilDue(testNow)
			if !ok {
				t.Fatal("expected ok")
			}
			if got != tt.want {
				t.Errorf("DaysUntilDue() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("no due date", func(t *testing.T) {
		if _, ok := New("x", testNow).DaysUntilDue(testNow); ok {
			t.Error("expected ok=false without due date")
		}
	})
}

func TestAddNote(t *testing.T) {
	it := New("x", testNow)
	first := it.AddNote("called vendor", testNow)
	second := it.AddNote("waiting on reply", testNow.Add(time.Minute))

	if len(it.Notes) != 2 {
		t.Fatalf("Notes: got %d, want 2", len(it.Notes))
	}
	if first.ID == "" || first.ID == second.ID {
		t.Error("note ids must be set and unique")
	}
	if it.Notes[0].Text != "called vendor" || it.Notes[1].Text != "waiting on reply" {
		t.Errorf("notes out of order: %+v", it.Notes)
	}
}

func TestMatches(t *testing.T) {
	it := New("Buy milk", testNow, WithDescription("from the corner shop"), WithTags("Errand"))

	tests := []struct {
		query string
		want  bool
	}{
		{"milk", true},
		{"MILK", true},
		{"corner", true},
		{"errand", true},
		{"bread", false},
		{"", true},
	}
	for _, tt := range tests {
		if got := it.Matches(tt.query); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestDueOn(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	day := time.Date(2024, 5, 15, 9, 0, 0, 0, loc)

	// 23:30 UTC on the 14th is 01:30 on the 15th in UTC+2.
	it := New("x", testNow, WithDueDate(time.Date(2024, 5, 14, 23, 30, 0, 0, time.UTC)))
	if !it.DueOn(day) {
		t.Error("expected due date to fall on the 15th in UTC+2")
	}
	if it.DueOn(day.AddDate(0, 0, 1)) {
		t.Error("did not expect due date on the 16th")
	}
	if New("y", testNow).DueOn(day) {
		t.Error("item without due date is never due")
	}
}
