package plugin

import (
	"encoding/json"

	"puppetwash/internal/entry"
)

// TypeSchema describes one entry type to the host.
type TypeSchema struct {
	Label               string          `json:"label"`
	Singleton           bool            `json:"singleton"`
	Methods             []string        `json:"methods"`
	Children            []string        `json:"children"`
	State               []string        `json:"state"`
	MetaAttributeSchema json.RawMessage `json:"meta_attribute_schema,omitempty"`
}

// Schema returns the schema of every entry type keyed by type id.
func Schema() map[string]TypeSchema {
	specs := entry.Types()
	out := make(map[string]TypeSchema, len(specs))
	for _, spec := range specs {
		children := make([]string, 0, len(spec.Children))
		for _, c := range spec.Children {
			children = append(children, string(c))
		}
		state := spec.StateFields
		if state == nil {
			state = []string{}
		}
		out[string(spec.Kind)] = TypeSchema{
			Label:               spec.Label,
			Singleton:           spec.Singleton,
			Methods:             spec.Methods,
			Children:            children,
			State:               state,
			MetaAttributeSchema: spec.MetadataSchema,
		}
	}
	return out
}
