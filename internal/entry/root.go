package entry

import "context"

// RootName is the label of the root entry.
const RootName = "puppet"

// Root lists one Instance per configured instance.
type Root struct {
	env Env
}

// NewRoot returns the root of the tree for env.
func NewRoot(env Env) *Root {
	return &Root{env: env}
}

func (r *Root) Name() string        { return RootName }
func (r *Root) Kind() Kind          { return KindRoot }
func (r *Root) State() State        { return newState(KindRoot, "config", r.env.stateConfig("")) }
func (r *Root) ListMode() FetchMode { return Lazy }

// List returns the configured instances sorted by name.
func (r *Root) List(context.Context) ([]Entry, error) {
	names := r.env.Config.Names()
	children := make([]Entry, 0, len(names))
	for _, name := range names {
		children = append(children, NewInstance(r.env, name))
	}
	return children, nil
}
