package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/todoboard/internal/todo"
)

// document is the on-disk layout of the data file.
type document struct {
	Items []json.RawMessage `json:"items"`
}

type documentOut struct {
	Items []*todo.Item `json:"items"`
}

// Load reads the data file at path into a new store. Records without an id
// get a generated one. Any malformed record fails the whole load and the
// error names its position, e.g. items[2].due_date.
func Load(path string, opts ...Option) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	if result := checkSchema(data); !result.Valid {
		return nil, fmt.Errorf("invalid data file %s: %w", path, result.Err())
	}
	items, errs := decodeItems(data)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid data file %s: %w", path, errors.Join(errs...))
	}

	s := New(opts...)
	s.items = items
	return s, nil
}

// Open loads the data file at path, or returns an empty store when the file
// does not exist yet.
func Open(path string, opts ...Option) (*Store, error) {
	s, err := Load(path, opts...)
	if errors.Is(err, os.ErrNotExist) {
		return New(opts...), nil
	}
	return s, err
}

func decodeItems(data []byte) ([]*todo.Item, []error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, []error{fmt.Errorf("parse data file: %w", err)}
	}

	var errs []error
	items := make([]*todo.Item, 0, len(doc.Items))
	seen := make(map[string]int, len(doc.Items))
	for i, raw := range doc.Items {
		var it todo.Item
		if err := json.Unmarshal(raw, &it); err != nil {
			errs = append(errs, itemError(i, err))
			continue
		}
		if it.ID == "" {
			it.ID = todo.NewID()
		}
		if first, dup := seen[it.ID]; dup {
			errs = append(errs, &ValidationError{
				Path: fmt.Sprintf("items[%d].id", i),
				Err:  fmt.Errorf("duplicate id %q, first used by items[%d]", it.ID, first),
			})
			continue
		}
		seen[it.ID] = i
		items = append(items, &it)
	}
	return items, errs
}

func itemError(i int, err error) error {
	var fe *todo.FieldError
	if errors.As(err, &fe) {
		return &ValidationError{Path: fmt.Sprintf("items[%d].%s", i, fe.Field), Err: fe.Err}
	}
	return &ValidationError{Path: fmt.Sprintf("items[%d]", i), Err: err}
}

// Save writes every record to path with 2-space indentation. The file is
// replaced atomically: a crash mid-write leaves the previous contents.
func (s *Store) Save(path string) error {
	out := documentOut{Items: s.items}
	if out.Items == nil {
		out.Items = []*todo.Item{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data file: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
