// Package validate checks request payloads against compiled JSON Schemas.
// Each entity ships a "create" schema (required fields, non-empty strings)
// and an "update" schema (same property constraints, nothing required, so
// partial updates pass while present-but-empty fields fail).
package validate

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator holds the compiled payload schemas, keyed by file name without
// extension ("cliente_create", "obra_update", ...).
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// PayloadError reports a payload that failed schema validation.
type PayloadError struct {
	Issues []string
}

func (e *PayloadError) Error() string {
	return "invalid payload: " + strings.Join(e.Issues, "; ")
}

// IsPayloadError reports whether err is a schema-validation failure, as
// opposed to an unknown schema or a validation execution error.
func IsPayloadError(err error) bool {
	_, ok := err.(*PayloadError)
	return ok
}

// New loads and compiles all embedded schemas.
func New() (*Validator, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas dir: %w", err)
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(entries))}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		b, err := fs.ReadFile(schemaFS, path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}

		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}

		name := strings.TrimSuffix(e.Name(), ".json")
		v.schemas[name] = rs
	}

	return v, nil
}

// Check validates payload against the named schema. It returns a
// *PayloadError when the payload violates the schema, and a plain error for
// unknown schema names or malformed JSON.
func (v *Validator) Check(ctx context.Context, name string, payload []byte) error {
	rs, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown payload schema %q", name)
	}

	keyErrs, err := rs.ValidateBytes(ctx, payload)
	if err != nil {
		return fmt.Errorf("validate payload: %w", err)
	}
	if len(keyErrs) == 0 {
		return nil
	}

	issues := make([]string, 0, len(keyErrs))
	for _, ke := range keyErrs {
		issues = append(issues, ke.Message)
	}
	return &PayloadError{Issues: issues}
}
