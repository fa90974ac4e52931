package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nibzard/todoboard/internal/todo"
)

// ItemRow is the structured view of a record in JSON and YAML output. It
// adds the derived deadline and subtask fields to the stored ones.
type ItemRow struct {
	ID              string       `json:"id" yaml:"id"`
	Title           string       `json:"title" yaml:"title"`
	Description     string       `json:"description,omitempty" yaml:"description,omitempty"`
	Priority        string       `json:"priority" yaml:"priority"`
	Category        string       `json:"category" yaml:"category"`
	Tags            []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
	DueDate         string       `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	DaysUntilDue    *int         `json:"days_until_due,omitempty" yaml:"days_until_due,omitempty"`
	Overdue         bool         `json:"overdue" yaml:"overdue"`
	Completed       bool         `json:"completed" yaml:"completed"`
	CompletedAt     string       `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	CreatedAt       string       `json:"created_at" yaml:"created_at"`
	EstimatedTime   *float64     `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty"`
	ActualTime      *float64     `json:"actual_time,omitempty" yaml:"actual_time,omitempty"`
	SubtaskProgress *float64     `json:"subtask_progress,omitempty" yaml:"subtask_progress,omitempty"`
	Subtasks        []SubtaskRow `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
	Notes           []NoteRow    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// SubtaskRow is the structured view of a subtask.
type SubtaskRow struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// NoteRow is the structured view of a note.
type NoteRow struct {
	Text      string `json:"text" yaml:"text"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// NewItemRow builds the structured view of it at now.
func NewItemRow(it *todo.Item, now time.Time) ItemRow {
	row := ItemRow{
		ID:            it.ID,
		Title:         it.Title,
		Description:   it.Description,
		Priority:      string(it.Priority),
		Category:      it.Category,
		Tags:          it.Tags,
		Overdue:       it.IsOverdue(now),
		Completed:     it.Completed,
		CreatedAt:     it.CreatedAt.Format(todo.TimestampLayout),
		EstimatedTime: it.EstimatedTime,
		ActualTime:    it.ActualTime,
	}
	if it.DueDate != nil {
		row.DueDate = it.DueDate.Format(todo.TimestampLayout)
		if days, ok := it.DaysUntilDue(now); ok {
			row.DaysUntilDue = &days
		}
	}
	if it.CompletedAt != nil {
		row.CompletedAt = it.CompletedAt.Format(todo.TimestampLayout)
	}
	if len(it.Subtasks) > 0 {
		progress := it.SubtaskProgress()
		row.SubtaskProgress = &progress
		for _, st := range it.Subtasks {
			row.Subtasks = append(row.Subtasks, SubtaskRow{ID: st.ID, Title: st.Title, Completed: st.Completed})
		}
	}
	for _, n := range it.Notes {
		row.Notes = append(row.Notes, NoteRow{Text: n.Text, CreatedAt: n.CreatedAt.Format(todo.TimestampLayout)})
	}
	return row
}

// WriteItems writes records in the given format. Verbose text output adds
// descriptions, tags, effort, subtasks and notes.
func WriteItems(w io.Writer, items []*todo.Item, now time.Time, f Format, verbose bool) error {
	if f != FormatText {
		rows := make([]ItemRow, 0, len(items))
		for _, it := range items {
			rows = append(rows, NewItemRow(it, now))
		}
		return encode(w, f, rows)
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found.")
		return err
	}
	for _, it := range items {
		writeItem(w, it, now, verbose)
	}
	return nil
}

// StatusIcon returns the list marker for a record.
func StatusIcon(it *todo.Item, now time.Time) string {
	switch {
	case it.Completed:
		return "✅"
	case it.IsOverdue(now):
		return "⚠️"
	default:
		return "📝"
	}
}

func writeItem(w io.Writer, it *todo.Item, now time.Time, verbose bool) {
	line := fmt.Sprintf("  %s [%s] (%s) %s", StatusIcon(it, now), ShortID(it.ID), it.Priority, it.Title)
	if it.Category != "" {
		line += "  #" + it.Category
	}
	if due := dueLabel(it, now); due != "" {
		line += "  " + due
	}
	if len(it.Subtasks) > 0 {
		line += fmt.Sprintf("  [%.0f%% of %d subtasks]", it.SubtaskProgress(), len(it.Subtasks))
	}
	fmt.Fprintln(w, line)

	if !verbose {
		return
	}
	if it.Description != "" {
		fmt.Fprintf(w, "      Description: %s\n", it.Description)
	}
	if len(it.Tags) > 0 {
		fmt.Fprintf(w, "      Tags: %s\n", strings.Join(it.Tags, ", "))
	}
	if it.EstimatedTime != nil || it.ActualTime != nil {
		fmt.Fprintf(w, "      Time: %s estimated, %s actual\n", hours(it.EstimatedTime), hours(it.ActualTime))
	}
	fmt.Fprintf(w, "      Created: %s\n", it.CreatedAt.In(now.Location()).Format("2006-01-02 15:04"))
	if it.CompletedAt != nil {
		fmt.Fprintf(w, "      Completed: %s\n", it.CompletedAt.In(now.Location()).Format("2006-01-02 15:04"))
	}
	for _, st := range it.Subtasks {
		mark := " "
		if st.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "      [%s] %s %s\n", mark, ShortID(st.ID), st.Title)
	}
	for _, n := range it.Notes {
		fmt.Fprintf(w, "      Note (%s): %s\n", n.CreatedAt.In(now.Location()).Format("2006-01-02"), n.Text)
	}
}

func hours(h *float64) string {
	if h == nil {
		return "-"
	}
	return fmt.Sprintf("%.1fh", *h)
}
