package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todoboard/internal/utils"
)

const schemaURL = "https://github.com/nibzard/todoboard/todos.schema.json"

//go:embed todos.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema describing the data file.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}

func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending value, e.g. items[2].due_date
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult collects every problem found in a data file.
type ValidationResult struct {
	Valid  bool
	Errors []error
}

// Err joins the collected errors, or returns nil for a valid result.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return errors.Join(r.Errors...)
}

func (r *ValidationResult) add(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// Validate checks raw data file contents against the schema and then
// decodes every record to catch what the schema cannot express: timestamp
// syntax, the completed/completed_at pairing and duplicate ids.
func Validate(data []byte) *ValidationResult {
	result := checkSchema(data)
	if !result.Valid {
		return result
	}
	if _, errs := decodeItems(data); len(errs) > 0 {
		for _, err := range errs {
			result.add(err)
		}
	}
	return result
}

func checkSchema(data []byte) *ValidationResult {
	result := &ValidationResult{
		Valid:  true,
		Errors: make([]error, 0),
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.add(fmt.Errorf("parse data file: %w", err))
		return result
	}

	schema, err := compileSchema()
	if err != nil {
		result.add(err)
		return result
	}
	if err := schema.Validate(doc); err != nil {
		appendSchemaErrors(result, err)
	}
	return result
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.add(err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.add(&ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
