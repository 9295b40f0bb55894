package v1alpha1

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// JSONSchema returns the indented JSON schema describing conf.json.
func JSONSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper:                    typeMapper,
	}

	schema := reflector.Reflect(&Config{})
	schema.ID = ""
	schema.Title = "vimoxide configuration"
	schema.Description = "JSON schema for the vimoxide configuration file (conf.json)"
	schema.Required = nil

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return data, nil
}

func typeMapper(t reflect.Type) *jsonschema.Schema {
	if t != reflect.TypeFor[Executor]() {
		return nil
	}

	values := ValidExecutors()
	enums := make([]any, len(values))

	for i, value := range values {
		enums[i] = string(value)
	}

	return &jsonschema.Schema{
		Type:        "string",
		Enum:        enums,
		Default:     string(ExecutorVim),
		Description: "Editor used to open files.",
	}
}
