package task

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tickler/internal/utils"
)

//go:embed task.schema.json
var schemaSource string

const schemaURL = "https://tickler.invalid/task.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema task documents are validated against.
func Schema() []byte {
	return []byte(schemaSource)
}

func taskSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
			schemaErr = fmt.Errorf("add task schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile task schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// validateTree validates a decoded document tree and returns one
// ValidationError per failing leaf.
func validateTree(tree map[string]any) []error {
	schema, err := taskSchema()
	if err != nil {
		return []error{err}
	}

	// Round-trip through JSON so YAML- and migration-produced values use the
	// same representation encoding/json produces.
	data, err := json.Marshal(tree)
	if err != nil {
		return []error{&ValidationError{Err: fmt.Errorf("failed to marshal document for validation: %w", err)}}
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return []error{&ValidationError{Err: fmt.Errorf("failed to unmarshal document for validation: %w", err)}}
	}

	if err := schema.Validate(obj); err != nil {
		return schemaErrors(err)
	}
	return nil
}

func schemaErrors(err error) []error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []error{err}
	}
	var out []error
	collectSchemaErrors(&out, ve)
	return out
}

func collectSchemaErrors(out *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}
