package casebook

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed case.schema.json
var caseSchemaJSON []byte

const caseSchemaURL = "schema://radstar/case.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ErrInvalidCase wraps schema violations in case documents.
type ErrInvalidCase struct {
	Err error
}

func (e *ErrInvalidCase) Error() string {
	return fmt.Sprintf("invalid case document: %v", e.Err)
}

func (e *ErrInvalidCase) Unwrap() error {
	return e.Err
}

// ValidateDocument checks a YAML case document against the case schema:
// three framework sections, each with all three depth bodies.
func ValidateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &ErrInvalidCase{Err: fmt.Errorf("parse yaml: %w", err)}
	}

	// The validator wants JSON-shaped values, so round-trip through JSON.
	raw, err := json.Marshal(doc)
	if err != nil {
		return &ErrInvalidCase{Err: fmt.Errorf("convert to json: %w", err)}
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidCase{Err: fmt.Errorf("parse json: %w", err)}
	}

	sch, err := caseSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(inst); err != nil {
		return &ErrInvalidCase{Err: err}
	}
	return nil
}

func caseSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(caseSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse case schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(caseSchemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add case schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(caseSchemaURL)
	})
	return compiledSchema, schemaErr
}
