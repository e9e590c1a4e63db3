package entry

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonschema"
)

// reportMetadataFields are the report fields fetched by the reports listing,
// in the order they are requested.
var reportMetadataFields = []string{
	"end_time",
	"environment",
	"status",
	"noop",
	"puppet_version",
	"producer",
	"hash",
}

// reportMetadataSchema is the declared schema of a Report's metadata.
const reportMetadataSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "end_time": {"type": "string"},
    "environment": {"type": ["string", "null"]},
    "status": {"type": ["string", "null"]},
    "noop": {"type": ["boolean", "null"]},
    "puppet_version": {"type": ["string", "null"]},
    "producer": {"type": ["string", "null"]},
    "hash": {"type": "string"}
  },
  "required": ["end_time", "hash"]
}`

var reportSchema = mustCompileSchema(reportMetadataSchema)

func mustCompileSchema(schema string) *jsonschema.Schema {
	compiled, err := jsonschema.NewCompiler().Compile([]byte(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in schema: %v", err))
	}
	return compiled
}

// validateReportMetadata checks one reports listing row against the schema.
func validateReportMetadata(row map[string]any) error {
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	result := reportSchema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("schema validation failed: %v", result.Errors)
}
