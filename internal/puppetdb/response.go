package puppetdb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is the raw JSON body of a successful query.
type Response struct {
	Resource string
	Body     json.RawMessage
}

// Records decodes the body as an array of objects.
func (r Response) Records() ([]map[string]any, error) {
	var records []map[string]any
	if err := r.decode(&records); err != nil {
		return nil, &MalformedResponseError{Resource: r.Resource, Reason: fmt.Sprintf("expected an array of objects: %v", err)}
	}
	if records == nil {
		// A JSON null body decodes to nil; callers expect a usable slice.
		records = []map[string]any{}
	}
	return records, nil
}

// Object decodes the body as a single object.
func (r Response) Object() (map[string]any, error) {
	var obj map[string]any
	if err := r.decode(&obj); err != nil {
		return nil, &MalformedResponseError{Resource: r.Resource, Reason: fmt.Sprintf("expected an object: %v", err)}
	}
	if obj == nil {
		return nil, &MalformedResponseError{Resource: r.Resource, Reason: "expected an object, got null"}
	}
	return obj, nil
}

// Value decodes the body into a generic JSON value.
func (r Response) Value() (any, error) {
	var v any
	if err := r.decode(&v); err != nil {
		return nil, &MalformedResponseError{Resource: r.Resource, Reason: err.Error()}
	}
	return v, nil
}

func (r Response) decode(v any) error {
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	dec.UseNumber()
	return dec.Decode(v)
}
