// Package store owns an ordered collection of task records and derives
// filtered views and statistics from it.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/todoboard/internal/todo"
)

var (
	// ErrNotFound is returned when no record matches a reference.
	ErrNotFound = errors.New("item not found")
	// ErrAmbiguous is returned when an id prefix matches several records.
	ErrAmbiguous = errors.New("ambiguous item reference")
	// ErrUnknownTemplate is returned for a template name that is not configured.
	ErrUnknownTemplate = errors.New("unknown template")
)

// DefaultCategories returns the built-in category list.
func DefaultCategories() []string {
	return []string{todo.DefaultCategory, "Work", "Personal", "Shopping", "Health", "Learning"}
}

// Store is an ordered collection of records. It is not safe for concurrent
// use; one store serves one session.
type Store struct {
	items      []*todo.Item
	categories []string
	templates  []Template
}

// Option configures a Store.
type Option func(*Store)

// WithCategories replaces the category list. An empty list keeps the default.
func WithCategories(categories ...string) Option {
	return func(s *Store) {
		var cleaned []string
		seen := make(map[string]bool)
		for _, c := range categories {
			c = strings.TrimSpace(c)
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			cleaned = append(cleaned, c)
		}
		if len(cleaned) > 0 {
			s.categories = cleaned
		}
	}
}

// WithTemplates replaces the quick-add templates. An empty list keeps the
// default.
func WithTemplates(templates ...Template) Option {
	return func(s *Store) {
		if len(templates) > 0 {
			s.templates = append([]Template(nil), templates...)
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		categories: DefaultCategories(),
		templates:  DefaultTemplates(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a record. The caller guarantees a fresh id.
func (s *Store) Add(item *todo.Item) {
	s.items = append(s.items, item)
}

// Remove deletes the record with the given id. It reports whether a record
// was removed; an unknown id is a no-op.
func (s *Store) Remove(id string) bool {
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// ClearCompleted removes every completed record, keeping the order of the
// rest, and returns how many were removed.
func (s *Store) ClearCompleted() int {
	kept := s.items[:0]
	removed := 0
	for _, it := range s.items {
		if it.Completed {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	return removed
}

// AddFromTemplate creates a record from the named template and appends it.
func (s *Store) AddFromTemplate(name string, now time.Time, opts ...todo.Option) (*todo.Item, error) {
	tpl, ok := s.Template(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	item := tpl.NewItem(now, opts...)
	s.Add(item)
	return item, nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (*todo.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// Resolve finds a record by full id or by an id prefix that matches exactly
// one record.
func (s *Store) Resolve(ref string) (*todo.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNotFound
	}
	if it, ok := s.Get(ref); ok {
		return it, nil
	}
	var match *todo.Item
	for _, it := range s.items {
		if !strings.HasPrefix(it.ID, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
		}
		match = it
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return match, nil
}

// Items returns the records in insertion order.
func (s *Store) Items() []*todo.Item {
	out := make([]*todo.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.items)
}

// Categories returns the configured category list.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Templates returns the configured quick-add templates.
func (s *Store) Templates() []Template {
	return append([]Template(nil), s.templates...)
}

// Template returns the template with the given name, ignoring case.
func (s *Store) Template(name string) (Template, bool) {
	for _, tpl := range s.templates {
		if strings.EqualFold(tpl.Name, name) {
			return tpl, true
		}
	}
	return Template{}, false
}
