package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"puppetwash/internal/entry"
)

// Method is one advertised method of an entry. Prefetched methods carry
// their result.
type Method struct {
	Name       string
	Prefetched bool
	Result     any
}

// MarshalJSON renders a lazy method as its bare name and a prefetched one as
// a [name, result] pair.
func (m Method) MarshalJSON() ([]byte, error) {
	if !m.Prefetched {
		return json.Marshal(m.Name)
	}
	return json.Marshal([]any{m.Name, m.Result})
}

// Attributes are the filesystem-like attributes of a descriptor.
type Attributes struct {
	Mtime *time.Time `json:"mtime,omitempty"`
}

// Descriptor is how an entry is handed to the host.
type Descriptor struct {
	TypeID          string         `json:"type_id"`
	Name            string         `json:"name"`
	Methods         []Method       `json:"methods"`
	Attributes      *Attributes    `json:"attributes,omitempty"`
	PartialMetadata map[string]any `json:"partial_metadata,omitempty"`
	State           string         `json:"state"`
}

// HasMethod reports whether the descriptor advertises name.
func (d Descriptor) HasMethod(name string) bool {
	for _, m := range d.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Describe builds the descriptor of e. Eager results are computed here, which
// for a Node means describing its children as well.
func Describe(ctx context.Context, e entry.Entry) (Descriptor, error) {
	spec, ok := entry.TypeOf(e.Kind())
	if !ok {
		return Descriptor{}, fmt.Errorf("no type registered for %s", e.Kind())
	}

	state, err := e.State().Encode()
	if err != nil {
		return Descriptor{}, err
	}

	d := Descriptor{
		TypeID:  string(e.Kind()),
		Name:    e.Name(),
		Methods: make([]Method, 0, len(spec.Methods)),
		State:   state,
	}

	for _, name := range spec.Methods {
		m, err := describeMethod(ctx, e, name)
		if err != nil {
			return Descriptor{}, fmt.Errorf("failed to describe %s %q: %w", e.Kind(), e.Name(), err)
		}
		d.Methods = append(d.Methods, m)
	}

	if a, ok := e.(entry.Attributed); ok {
		if attrs := a.Attributes(); attrs.Mtime != nil {
			mtime := attrs.Mtime.UTC()
			d.Attributes = &Attributes{Mtime: &mtime}
		}
	}
	if h, ok := e.(entry.MetadataHolder); ok {
		d.PartialMetadata = h.Metadata()
	}
	return d, nil
}

func describeMethod(ctx context.Context, e entry.Entry, name string) (Method, error) {
	m := Method{Name: name}
	switch name {
	case entry.MethodList:
		l, ok := e.(entry.Lister)
		if !ok || l.ListMode() != entry.Eager {
			return m, nil
		}
		children, err := describeChildren(ctx, l)
		if err != nil {
			return m, err
		}
		m.Prefetched, m.Result = true, children
	case entry.MethodRead:
		r, ok := e.(entry.Reader)
		if !ok || r.ReadMode() != entry.Eager {
			return m, nil
		}
		content, err := r.Read(ctx)
		if err != nil {
			return m, err
		}
		m.Prefetched, m.Result = true, string(content)
	}
	return m, nil
}

func describeChildren(ctx context.Context, l entry.Lister) ([]Descriptor, error) {
	children, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Descriptor, 0, len(children))
	for _, child := range children {
		d, err := Describe(ctx, child)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
