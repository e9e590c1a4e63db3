package entry

import "encoding/json"

// Method names as exposed to the host.
const (
	MethodList     = "list"
	MethodRead     = "read"
	MethodMetadata = "metadata"
)

// TypeSpec describes one Kind to the host.
type TypeSpec struct {
	Kind  Kind
	Label string
	// Singleton entries have exactly one instance per parent; the host may dedupe them.
	Singleton bool
	Methods   []string
	Children  []Kind
	// StateFields lists, in order, the fields that make up the kind's State.
	// Every kind carries "config", the configuration it rebuilds clients from.
	StateFields []string
	// MetadataSchema is the JSON schema of the entry's metadata, if declared.
	MetadataSchema json.RawMessage
}

var typeSpecs = []TypeSpec{
	{
		Kind:        KindRoot,
		Label:       "puppet",
		Singleton:   true,
		Methods:     []string{MethodList},
		Children:    []Kind{KindInstance},
		StateFields: []string{"config"},
	},
	{
		Kind:        KindInstance,
		Label:       "instance",
		Methods:     []string{MethodList},
		Children:    []Kind{KindNodes},
		StateFields: []string{"instance", "config"},
	},
	{
		Kind:        KindNodes,
		Label:       "nodes",
		Singleton:   true,
		Methods:     []string{MethodList},
		Children:    []Kind{KindNode},
		StateFields: []string{"instance", "config"},
	},
	{
		Kind:        KindNode,
		Label:       "node",
		Methods:     []string{MethodList, MethodMetadata},
		Children:    []Kind{KindCatalog, KindFacts, KindReports},
		StateFields: []string{"instance", "node", "config"},
	},
	{
		Kind:        KindCatalog,
		Label:       "catalog",
		Singleton:   true,
		Methods:     []string{MethodRead},
		StateFields: []string{"node", "instance", "config"},
	},
	{
		Kind:        KindFacts,
		Label:       "facts",
		Singleton:   true,
		Methods:     []string{MethodList},
		Children:    []Kind{KindFact},
		StateFields: []string{"node", "instance", "config"},
	},
	{
		Kind:        KindFact,
		Label:       "fact",
		Methods:     []string{MethodRead},
		StateFields: []string{"name", "value", "node", "instance", "config"},
	},
	{
		Kind:        KindReports,
		Label:       "reports",
		Singleton:   true,
		Methods:     []string{MethodList},
		Children:    []Kind{KindReport},
		StateFields: []string{"node", "instance", "config"},
	},
	{
		Kind:           KindReport,
		Label:          "report",
		Methods:        []string{MethodRead, MethodMetadata},
		StateFields:    []string{"node", "instance", "hash", "config"},
		MetadataSchema: json.RawMessage(reportMetadataSchema),
	},
}

// Types returns the specs of every kind, root first.
func Types() []TypeSpec {
	out := make([]TypeSpec, len(typeSpecs))
	copy(out, typeSpecs)
	return out
}

// TypeOf returns the spec for kind.
func TypeOf(kind Kind) (TypeSpec, bool) {
	for _, spec := range typeSpecs {
		if spec.Kind == kind {
			return spec, true
		}
	}
	return TypeSpec{}, false
}
