// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Find returns the activity with the given task type, or nil.
func (r *ActivityRegistry) Find(taskType string) *Activity {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i]
		}
	}
	return nil
}

// ValidateInput checks job variables against the activity's input schema.
// Activities with an empty schema accept any input.
func (a *Activity) ValidateInput(variables map[string]interface{}) error {
	if len(a.InputSchema) == 0 {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(a.InputSchema)
	documentLoader := gojsonschema.NewGoLoader(variables)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("input validation failed for %s: %v", a.TaskType, errs)
	}

	return nil
}
