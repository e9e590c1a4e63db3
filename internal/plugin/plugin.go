package plugin

import (
	"context"
	"errors"
	"fmt"

	"puppetwash/internal/config"
	"puppetwash/internal/entry"
	"puppetwash/pkg/logging"
)

// ErrUnsupportedMethod is returned when the host invokes a method the entry
// does not advertise.
var ErrUnsupportedMethod = errors.New("unsupported method")

// Plugin answers host method calls for one configuration.
type Plugin struct {
	env entry.Env
}

// New returns a Plugin serving env.
func New(env entry.Env) *Plugin {
	return &Plugin{env: env}
}

// NewFromJSON returns a Plugin for the JSON configuration the host passes to init.
func NewFromJSON(raw []byte) (*Plugin, error) {
	cfg, err := config.ParseJSON(raw)
	if err != nil {
		return nil, err
	}
	return New(entry.NewEnv(cfg)), nil
}

// Init returns the descriptor of the root entry.
func (p *Plugin) Init(ctx context.Context) (Descriptor, error) {
	logging.Debug("Plugin", "init with %d instance(s)", len(p.env.Config))
	return Describe(ctx, entry.NewRoot(p.env))
}

// Entry rebuilds the entry named name from its encoded state.
func (p *Plugin) Entry(name, state string) (entry.Entry, error) {
	return entry.ReconstructEncoded(p.env, name, state)
}

// List returns the descriptors of the entry's children, in listing order.
func (p *Plugin) List(ctx context.Context, name, state string) ([]Descriptor, error) {
	e, err := p.Entry(name, state)
	if err != nil {
		return nil, err
	}
	l, ok := e.(entry.Lister)
	if !ok {
		return nil, unsupported(e, entry.MethodList)
	}
	logging.Debug("Plugin", "list %s %q", e.Kind(), e.Name())
	return describeChildren(ctx, l)
}

// Read returns the entry's content.
func (p *Plugin) Read(ctx context.Context, name, state string) ([]byte, error) {
	e, err := p.Entry(name, state)
	if err != nil {
		return nil, err
	}
	r, ok := e.(entry.Reader)
	if !ok {
		return nil, unsupported(e, entry.MethodRead)
	}
	logging.Debug("Plugin", "read %s %q", e.Kind(), e.Name())
	return r.Read(ctx)
}

// Metadata returns the entry's metadata, fetching it when the rebuilt entry
// carries none.
func (p *Plugin) Metadata(ctx context.Context, name, state string) (map[string]any, error) {
	e, err := p.Entry(name, state)
	if err != nil {
		return nil, err
	}
	logging.Debug("Plugin", "metadata %s %q", e.Kind(), e.Name())
	switch h := e.(type) {
	case entry.MetadataLoader:
		return h.LoadMetadata(ctx)
	case entry.MetadataHolder:
		return h.Metadata(), nil
	default:
		return nil, unsupported(e, entry.MethodMetadata)
	}
}

// Schema returns the type schema map.
func (p *Plugin) Schema() map[string]TypeSchema {
	return Schema()
}

func unsupported(e entry.Entry, method string) error {
	return fmt.Errorf("%w: %s on %s %q", ErrUnsupportedMethod, method, e.Kind(), e.Name())
}
