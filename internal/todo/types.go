// Package todo models a single task record and its state transitions.
package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency of a record.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultCategory is assigned to records created without a category.
const DefaultCategory = "General"

// Priorities returns every priority, most urgent first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority parses a priority name case-insensitively. The single letters
// h, m and l are accepted as shorthands.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return PriorityHigh, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "low", "l":
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("invalid priority %q, must be one of: High, Medium, Low", s)
	}
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Item is a single task record.
type Item struct {
	ID            string
	Title         string
	Description   string
	Priority      Priority
	Category      string
	Tags          []string
	DueDate       *time.Time
	Completed     bool
	CompletedAt   *time.Time
	CreatedAt     time.Time
	EstimatedTime *float64 // hours
	ActualTime    *float64 // hours
	Subtasks      []Subtask
	Notes         []Note
}

// Subtask is an independently completable step of a record.
type Subtask struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt time.Time
}

// Note is an append-only annotation on a record.
type Note struct {
	ID        string
	Text      string
	CreatedAt time.Time
}

// Option configures a record at construction.
type Option func(*Item)

// WithID overrides the generated identifier.
func WithID(id string) Option {
	return func(it *Item) {
		if id != "" {
			it.ID = id
		}
	}
}

// WithDescription sets the free-text description.
func WithDescription(desc string) Option {
	return func(it *Item) {
		it.Description = desc
	}
}

// WithPriority sets the priority. Unknown values are ignored.
func WithPriority(p Priority) Option {
	return func(it *Item) {
		if p.Valid() {
			it.Priority = p
		}
	}
}

// WithCategory sets the category. An empty category keeps the default.
func WithCategory(category string) Option {
	return func(it *Item) {
		if strings.TrimSpace(category) != "" {
			it.Category = strings.TrimSpace(category)
		}
	}
}

// WithTags sets the tag labels. Blank labels are dropped.
func WithTags(tags ...string) Option {
	return func(it *Item) {
		it.Tags = normalizeTags(tags)
	}
}

// WithDueDate sets the deadline.
func WithDueDate(due time.Time) Option {
	return func(it *Item) {
		d := due
		it.DueDate = &d
	}
}

// WithEstimate sets the estimated effort in hours.
func WithEstimate(hours float64) Option {
	return func(it *Item) {
		h := hours
		it.EstimatedTime = &h
	}
}

// New creates a pending record stamped with now.
func New(title string, now time.Time, opts ...Option) *Item {
	it := &Item{
		ID:        NewID(),
		Title:     title,
		Priority:  PriorityMedium,
		Category:  DefaultCategory,
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// NewID returns a fresh random record identifier.
func NewID() string {
	return uuid.NewString()
}

func normalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
