package todo

import (
	"math"
	"strings"
	"time"
)

// MarkCompleted completes the record and stamps completed_at with now.
// Calling it on a completed record refreshes completed_at.
func (it *Item) MarkCompleted(now time.Time) {
	t := now
	it.Completed = true
	it.CompletedAt = &t
}

// MarkUncompleted reopens the record and clears completed_at.
func (it *Item) MarkUncompleted() {
	it.Completed = false
	it.CompletedAt = nil
}

// ToggleCompleted flips the completion state and reports the new state.
func (it *Item) ToggleCompleted(now time.Time) bool {
	if it.Completed {
		it.MarkUncompleted()
	} else {
		it.MarkCompleted(now)
	}
	return it.Completed
}

// AddSubtask appends a pending subtask and returns it.
func (it *Item) AddSubtask(title string, now time.Time) Subtask {
	st := Subtask{
		ID:        it.freshSubtaskID(),
		Title:     title,
		CreatedAt: now,
	}
	it.Subtasks = append(it.Subtasks, st)
	return st
}

// freshSubtaskID returns an id not used by any existing subtask.
func (it *Item) freshSubtaskID() string {
	for {
		id := NewID()
		if _, ok := it.Subtask(id); !ok {
			return id
		}
	}
}

// Subtask returns the subtask with the given id.
func (it *Item) Subtask(id string) (*Subtask, bool) {
	for i := range it.Subtasks {
		if it.Subtasks[i].ID == id {
			return &it.Subtasks[i], true
		}
	}
	return nil, false
}

// FindSubtask returns the subtask whose id equals ref or, failing that, the
// only subtask whose id starts with ref.
func (it *Item) FindSubtask(ref string) (*Subtask, bool) {
	if ref == "" {
		return nil, false
	}
	if st, ok := it.Subtask(ref); ok {
		return st, true
	}
	var match *Subtask
	for i := range it.Subtasks {
		if strings.HasPrefix(it.Subtasks[i].ID, ref) {
			if match != nil {
				return nil, false
			}
			match = &it.Subtasks[i]
		}
	}
	return match, match != nil
}

// ToggleSubtask flips the completion flag of the named subtask. It returns
// false and changes nothing when the id is unknown.
func (it *Item) ToggleSubtask(id string) bool {
	st, ok := it.Subtask(id)
	if !ok {
		return false
	}
	st.Completed = !st.Completed
	return true
}

// SubtaskProgress returns the percentage of completed subtasks, or 0 when
// there are none.
func (it *Item) SubtaskProgress() float64 {
	if len(it.Subtasks) == 0 {
		return 0
	}
	done := 0
	for _, st := range it.Subtasks {
		if st.Completed {
			done++
		}
	}
	return 100 * float64(done) / float64(len(it.Subtasks))
}

// IsOverdue reports whether an open record is past its deadline at now.
func (it *Item) IsOverdue(now time.Time) bool {
	if it.Completed || it.DueDate == nil {
		return false
	}
	return now.After(*it.DueDate)
}

// DaysUntilDue returns the whole days from now until the deadline, rounded
// toward negative infinity. ok is false when there is no deadline.
func (it *Item) DaysUntilDue(now time.Time) (days int, ok bool) {
	if it.DueDate == nil {
		return 0, false
	}
	diff := it.DueDate.Sub(now)
	return int(math.Floor(diff.Hours() / 24)), true
}

// AddNote appends a note and returns it.
func (it *Item) AddNote(text string, now time.Time) Note {
	n := Note{
		ID:        NewID(),
		Text:      text,
		CreatedAt: now,
	}
	it.Notes = append(it.Notes, n)
	return n
}

// SetActualTime records the hours actually spent.
func (it *Item) SetActualTime(hours float64) {
	h := hours
	it.ActualTime = &h
}

// Matches reports whether query occurs, ignoring case, in the title, the
// description or any tag. An empty query matches everything.
func (it *Item) Matches(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(it.Title), q) ||
		strings.Contains(strings.ToLower(it.Description), q) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// DueOn reports whether the deadline falls on the calendar day of day, in
// day's location.
func (it *Item) DueOn(day time.Time) bool {
	if it.DueDate == nil {
		return false
	}
	return sameDate(it.DueDate.In(day.Location()), day)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
