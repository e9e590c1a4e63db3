package entry

import (
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// Field is one named value of a State.
type Field struct {
	Name  string
	Value string
}

// State is the record an entry is rebuilt from: its kind plus the fields its
// TypeSpec declares, in declaration order.
type State struct {
	Kind   Kind
	Fields []Field
}

// newState builds a State for kind from alternating name/value pairs.
func newState(kind Kind, pairs ...string) State {
	s := State{Kind: kind, Fields: make([]Field, 0, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Fields = append(s.Fields, Field{Name: pairs[i], Value: pairs[i+1]})
	}
	return s
}

// Get returns the value of the named field.
func (s State) Get(name string) (string, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// require returns the named field or a StateError.
func (s State) require(name string) (string, error) {
	v, ok := s.Get(name)
	if !ok {
		return "", &StateError{Kind: s.Kind, Reason: fmt.Sprintf("missing field %q", name)}
	}
	return v, nil
}

// Encode renders s as RFC 8785 canonical JSON, so equal states always encode
// to identical strings.
func (s State) Encode() (string, error) {
	obj := make(map[string]string, len(s.Fields)+1)
	for _, f := range s.Fields {
		obj[f.Name] = f.Value
	}
	obj["kind"] = string(s.Kind)

	raw, err := json.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s state: %w", s.Kind, err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize %s state: %w", s.Kind, err)
	}
	return string(canonical), nil
}

// DecodeState parses an encoded state, ordering its fields as the kind's
// TypeSpec declares them. Fields the kind does not declare are rejected.
func DecodeState(encoded string) (State, error) {
	var obj map[string]string
	if err := json.Unmarshal([]byte(encoded), &obj); err != nil {
		return State{}, &StateError{Reason: fmt.Sprintf("invalid state record: %v", err)}
	}

	kind := Kind(obj["kind"])
	spec, ok := TypeOf(kind)
	if !ok {
		return State{}, &StateError{Kind: kind, Reason: "unknown kind"}
	}
	delete(obj, "kind")

	s := State{Kind: kind, Fields: make([]Field, 0, len(spec.StateFields))}
	for _, name := range spec.StateFields {
		v, ok := obj[name]
		if !ok {
			return State{}, &StateError{Kind: kind, Reason: fmt.Sprintf("missing field %q", name)}
		}
		s.Fields = append(s.Fields, Field{Name: name, Value: v})
		delete(obj, name)
	}
	for name := range obj {
		return State{}, &StateError{Kind: kind, Reason: fmt.Sprintf("unexpected field %q", name)}
	}
	return s, nil
}

// StateError indicates a state record cannot be turned back into an entry.
type StateError struct {
	Kind   Kind
	Reason string
}

func (e *StateError) Error() string {
	if e.Kind == "" {
		return "invalid entry state: " + e.Reason
	}
	return fmt.Sprintf("invalid %s state: %s", e.Kind, e.Reason)
}
