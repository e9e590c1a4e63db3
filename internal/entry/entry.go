package entry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"puppetwash/internal/config"
	"puppetwash/internal/puppetdb"
	"puppetwash/internal/query"
)

// Kind identifies an entry type.
type Kind string

const (
	KindRoot     Kind = "root"
	KindInstance Kind = "instance"
	KindNodes    Kind = "nodes"
	KindNode     Kind = "node"
	KindCatalog  Kind = "catalog"
	KindFacts    Kind = "facts"
	KindFact     Kind = "fact"
	KindReports  Kind = "reports"
	KindReport   Kind = "report"
)

// FetchMode says when an operation's result is computed.
type FetchMode int

const (
	// Lazy results are computed, usually with a query, when the operation is invoked.
	Lazy FetchMode = iota
	// Eager results are computed at construction; invoking the operation issues no request.
	Eager
)

func (m FetchMode) String() string {
	if m == Eager {
		return "eager"
	}
	return "lazy"
}

// Entry is a node of the tree.
type Entry interface {
	// Name is the label the host uses to build paths.
	Name() string
	Kind() Kind
	// State is the record this entry is rebuilt from.
	State() State
}

// Lister is implemented by entries with children.
type Lister interface {
	Entry
	List(ctx context.Context) ([]Entry, error)
	ListMode() FetchMode
}

// Reader is implemented by entries with content.
type Reader interface {
	Entry
	Read(ctx context.Context) ([]byte, error)
	ReadMode() FetchMode
}

// MetadataHolder is implemented by entries carrying structured metadata that
// is available without calling Read.
type MetadataHolder interface {
	Entry
	Metadata() map[string]any
}

// MetadataLoader is implemented by metadata holders that can fetch their
// metadata when they were rebuilt from state and carry none.
type MetadataLoader interface {
	MetadataHolder
	LoadMetadata(ctx context.Context) (map[string]any, error)
}

// Attributes are filesystem-like attributes of an entry.
type Attributes struct {
	Mtime *time.Time
}

// Attributed is implemented by entries with attributes.
type Attributed interface {
	Entry
	Attributes() Attributes
}

// ErrUnknownInstance is returned when a state record names an instance that is
// not configured.
var ErrUnknownInstance = errors.New("unknown instance")

// Env is what every entry needs to reach PuppetDB: the read-only
// configuration and the way to turn an instance's configuration into a client.
// Entries persist the part of Config they use in their State, so a rebuilt
// entry gets its Config from the state alone.
type Env struct {
	Config    config.Config
	NewClient puppetdb.ClientFactory
}

// NewEnv returns an Env that builds real PuppetDB clients.
func NewEnv(cfg config.Config) Env {
	return Env{Config: cfg, NewClient: puppetdb.NewClient}
}

// client builds a fresh client for the named instance.
func (e Env) client(instance string) (puppetdb.Client, error) {
	ic, ok := e.Config.Instance(instance)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInstance, instance)
	}
	newClient := e.NewClient
	if newClient == nil {
		newClient = puppetdb.NewClient
	}
	c, err := newClient(ic)
	if err != nil {
		return nil, fmt.Errorf("instance %s: %w", instance, err)
	}
	return c, nil
}

// stateConfig encodes the configuration persisted by entries of instance:
// that instance alone, or the whole configuration when instance is empty.
func (e Env) stateConfig(instance string) string {
	cfg := config.Config{}
	for name, ic := range e.Config {
		if instance == "" || name == instance {
			cfg[name] = ic
		}
	}
	// Maps marshal with sorted keys.
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// decodeStateConfig parses the config field of a state record of kind.
func decodeStateConfig(kind Kind, raw string) (config.Config, error) {
	var cfg config.Config
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, &StateError{Kind: kind, Reason: fmt.Sprintf("invalid config: %v", err)}
	}
	return cfg, nil
}

// fetch builds a client for instance and issues one request.
func (e Env) fetch(ctx context.Context, instance, resource string, filter query.Expr) (puppetdb.Response, error) {
	c, err := e.client(instance)
	if err != nil {
		return puppetdb.Response{}, err
	}
	return c.Query(ctx, resource, filter)
}

// ID returns the stable key of e: its kind and canonical state.
func ID(e Entry) (string, error) {
	return e.State().Encode()
}
