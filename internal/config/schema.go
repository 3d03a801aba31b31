package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema for Config, documenting the on-disk
// format. It is served over IPC by the get_config_schema request (see
// SchemaJSON); nothing in this module validates a config file against it.
func Schema() (*jsonschema.Schema, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := r.Reflect(&Config{})
	return schema, nil
}

// SchemaJSON renders Schema as indented JSON text.
func SchemaJSON() ([]byte, error) {
	schema, err := Schema()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(schema, "", "  ")
}
