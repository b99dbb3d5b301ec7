package scene

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed layout.schema.json
var layoutSchemaJSON []byte

const layoutSchemaURL = "schema://sortbot/layout.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// layoutSchema returns the compiled layout schema, compiling it on first use.
func layoutSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal(layoutSchemaJSON, &def); err != nil {
			compileErr = fmt.Errorf("parse layout schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(layoutSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(layoutSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile layout schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validateSchema checks a decoded layout document against the schema.
func validateSchema(doc any) error {
	sch, err := layoutSchema()
	if err != nil {
		return err
	}
	parsed, err := normalize(doc)
	if err != nil {
		return fmt.Errorf("normalize layout: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return &ValidationError{Problems: []string{fmt.Sprintf("schema: %v", err)}}
	}
	return nil
}
