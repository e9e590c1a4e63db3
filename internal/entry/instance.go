package entry

import "context"

// NodesName is the label of an instance's nodes collection.
const NodesName = "nodes"

// Instance is one configured PuppetDB endpoint.
type Instance struct {
	env  Env
	name string
}

// NewInstance returns the entry for the named instance.
func NewInstance(env Env, name string) *Instance {
	return &Instance{env: env, name: name}
}

func (i *Instance) Name() string { return i.name }
func (i *Instance) Kind() Kind   { return KindInstance }
func (i *Instance) State() State {
	return newState(KindInstance, "instance", i.name, "config", i.env.stateConfig(i.name))
}
func (i *Instance) ListMode() FetchMode { return Lazy }

// List returns the instance's single nodes collection.
func (i *Instance) List(context.Context) ([]Entry, error) {
	return []Entry{NewNodesCollection(i.env, i.name)}, nil
}
