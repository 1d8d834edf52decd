package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const schemaURL = "flocksim://config.schema.json"

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "arena": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "width":  {"type": "number", "minimum": 0, "maximum": 1000},
        "height": {"type": "number", "minimum": 0, "maximum": 1000},
        "scale":  {"type": "number", "exclusiveMinimum": 0, "maximum": 1}
      }
    },
    "seed":    {"type": "integer"},
    "tick_ms": {"type": "integer", "minimum": 1},
    "agents":  {"type": "integer", "minimum": 0},
    "pois": {
      "type": "array",
      "maxItems": 10,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["x", "y"],
        "properties": {
          "x":       {"type": "number", "minimum": 0, "exclusiveMaximum": 1},
          "y":       {"type": "number", "minimum": 0, "exclusiveMaximum": 1},
          "attract": {"type": "boolean"}
        }
      }
    },
    "theme": {"type": "string"},
    "log": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"enum": ["info", "debug", "trace", "INFO", "DEBUG", "TRACE"]},
        "file":  {"type": "string"}
      }
    },
    "run": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "ticks": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(schemaURL, schemaJSON)
	})
	return schema, schemaErr
}

// validateSchema checks a YAML document against the config schema. The YAML
// is round-tripped through JSON so the validator sees JSON value types.
func validateSchema(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	if doc == nil {
		return nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}

	return sch.Validate(v)
}
