package entry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"puppetwash/internal/formatting"
	"puppetwash/internal/puppetdb"
	"puppetwash/internal/query"
)

const resourceFacts = "facts"

// FactsCollection lists the facts of a node.
type FactsCollection struct {
	env      Env
	instance string
	certname string
}

// NewFactsCollection returns the facts collection of certname.
func NewFactsCollection(env Env, instance, certname string) *FactsCollection {
	return &FactsCollection{env: env, instance: instance, certname: certname}
}

func (f *FactsCollection) Name() string        { return FactsName }
func (f *FactsCollection) Kind() Kind          { return KindFacts }
func (f *FactsCollection) ListMode() FetchMode { return Lazy }

func (f *FactsCollection) State() State {
	return newState(KindFacts, "node", f.certname, "instance", f.instance, "config", f.env.stateConfig(f.instance))
}

func (f *FactsCollection) filter() query.Expr {
	return query.Equals("certname", f.certname)
}

// List queries the node's facts; each row becomes a Fact holding its value.
func (f *FactsCollection) List(ctx context.Context) ([]Entry, error) {
	resp, err := f.env.fetch(ctx, f.instance, resourceFacts, f.filter())
	if err != nil {
		return nil, err
	}
	rows, err := resp.Records()
	if err != nil {
		return nil, err
	}

	children := make([]Entry, 0, len(rows))
	for i, row := range rows {
		name, ok := row["name"].(string)
		if !ok || name == "" {
			return nil, &puppetdb.MalformedResponseError{
				Resource: resourceFacts,
				Reason:   fmt.Sprintf("row %d has no fact name", i),
			}
		}
		value, ok := row["value"]
		if !ok {
			return nil, &puppetdb.MalformedResponseError{
				Resource: resourceFacts,
				Reason:   fmt.Sprintf("fact %s has no value", name),
			}
		}
		fact, err := NewFact(f.env, name, value, f.certname, f.instance)
		if err != nil {
			return nil, err
		}
		children = append(children, fact)
	}
	return children, nil
}

// Fact is one fact of a node. Its content is rendered at construction.
type Fact struct {
	env       Env
	name      string
	valueJSON string
	certname  string
	instance  string
	content   []byte
}

// NewFact captures a fact value.
func NewFact(env Env, name string, value any, certname, instance string) (*Fact, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode fact %s: %w", name, err)
	}
	return &Fact{
		env:       env,
		name:      name,
		valueJSON: string(raw),
		certname:  certname,
		instance:  instance,
		content:   formatting.Readable(value),
	}, nil
}

// newFactFromJSON rebuilds a fact from the JSON encoding of its value.
func newFactFromJSON(env Env, name, valueJSON, certname, instance string) (*Fact, error) {
	var value any
	dec := json.NewDecoder(bytes.NewReader([]byte(valueJSON)))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return nil, &StateError{Kind: KindFact, Reason: fmt.Sprintf("invalid value for fact %s: %v", name, err)}
	}
	return NewFact(env, name, value, certname, instance)
}

func (f *Fact) Name() string        { return f.name }
func (f *Fact) Kind() Kind          { return KindFact }
func (f *Fact) ReadMode() FetchMode { return Eager }

// State stores the value as its JSON encoding so numbers survive exactly.
func (f *Fact) State() State {
	return newState(KindFact, "name", f.name, "value", f.valueJSON, "node", f.certname, "instance", f.instance, "config", f.env.stateConfig(f.instance))
}

// Read returns the captured value without a request.
func (f *Fact) Read(context.Context) ([]byte, error) {
	return bytes.Clone(f.content), nil
}
