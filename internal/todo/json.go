package todo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the layout used when writing timestamps.
const TimestampLayout = time.RFC3339Nano

// naiveLayouts are accepted on read for values without a UTC offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an RFC 3339 timestamp or a naive ISO-8601 date or
// date-time. Naive values are interpreted in loc (time.Local when nil).
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// FieldError reports a decode failure for one field of a record.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

type itemJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Priority      string        `json:"priority,omitempty"`
	Category      string        `json:"category,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
	DueDate       *string       `json:"due_date"`
	Completed     bool          `json:"completed"`
	CreatedAt     string        `json:"created_at"`
	CompletedAt   *string       `json:"completed_at"`
	EstimatedTime *float64      `json:"estimated_time,omitempty"`
	ActualTime    *float64      `json:"actual_time,omitempty"`
	Subtasks      []subtaskJSON `json:"subtasks,omitempty"`
	Notes         []noteJSON    `json:"notes,omitempty"`
}

type subtaskJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

type noteJSON struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// MarshalJSON implements json.Marshaler.
func (it Item) MarshalJSON() ([]byte, error) {
	out := itemJSON{
		ID:            it.ID,
		Title:         it.Title,
		Description:   it.Description,
		Priority:      string(it.Priority),
		Category:      it.Category,
		Tags:          it.Tags,
		DueDate:       formatOptional(it.DueDate),
		Completed:     it.Completed,
		CreatedAt:     it.CreatedAt.Format(TimestampLayout),
		CompletedAt:   formatOptional(it.CompletedAt),
		EstimatedTime: it.EstimatedTime,
		ActualTime:    it.ActualTime,
	}
	for _, st := range it.Subtasks {
		out.Subtasks = append(out.Subtasks, subtaskJSON{
			ID:        st.ID,
			Title:     st.Title,
			Completed: st.Completed,
			CreatedAt: st.CreatedAt.Format(TimestampLayout),
		})
	}
	for _, n := range it.Notes {
		out.Notes = append(out.Notes, noteJSON{
			ID:        n.ID,
			Text:      n.Text,
			CreatedAt: n.CreatedAt.Format(TimestampLayout),
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. Absent optional fields take
// their defaults; malformed values return a *FieldError. A missing id is
// left empty for the owning store to fill.
func (it *Item) UnmarshalJSON(data []byte) error {
	var in itemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	out := Item{
		ID:            in.ID,
		Title:         in.Title,
		Description:   in.Description,
		Priority:      PriorityMedium,
		Category:      DefaultCategory,
		Tags:          normalizeTags(in.Tags),
		Completed:     in.Completed,
		EstimatedTime: in.EstimatedTime,
		ActualTime:    in.ActualTime,
	}

	if in.Priority != "" {
		p := Priority(in.Priority)
		if !p.Valid() {
			return &FieldError{
				Field: "priority",
				Err:   fmt.Errorf("invalid priority %q, must be one of: High, Medium, Low", in.Priority),
			}
		}
		out.Priority = p
	}
	if strings.TrimSpace(in.Category) != "" {
		out.Category = in.Category
	}

	created, err := ParseTimestamp(in.CreatedAt, nil)
	if err != nil {
		return &FieldError{Field: "created_at", Err: err}
	}
	out.CreatedAt = created

	if out.DueDate, err = parseOptional(in.DueDate); err != nil {
		return &FieldError{Field: "due_date", Err: err}
	}
	if out.CompletedAt, err = parseOptional(in.CompletedAt); err != nil {
		return &FieldError{Field: "completed_at", Err: err}
	}
	if out.Completed != (out.CompletedAt != nil) {
		return &FieldError{
			Field: "completed_at",
			Err:   fmt.Errorf("must be set if and only if completed is true"),
		}
	}

	for i, st := range in.Subtasks {
		ts, err := ParseTimestamp(st.CreatedAt, nil)
		if err != nil {
			return &FieldError{Field: fmt.Sprintf("subtasks[%d].created_at", i), Err: err}
		}
		if _, dup := out.Subtask(st.ID); dup || st.ID == "" {
			return &FieldError{
				Field: fmt.Sprintf("subtasks[%d].id", i),
				Err:   fmt.Errorf("missing or duplicate subtask id %q", st.ID),
			}
		}
		out.Subtasks = append(out.Subtasks, Subtask{
			ID:        st.ID,
			Title:     st.Title,
			Completed: st.Completed,
			CreatedAt: ts,
		})
	}
	for i, n := range in.Notes {
		ts, err := ParseTimestamp(n.CreatedAt, nil)
		if err != nil {
			return &FieldError{Field: fmt.Sprintf("notes[%d].created_at", i), Err: err}
		}
		out.Notes = append(out.Notes, Note{ID: n.ID, Text: n.Text, CreatedAt: ts})
	}

	*it = out
	return nil
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(TimestampLayout)
	return &s
}

func parseOptional(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(*s, nil)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
