package entry

import (
	"context"
	"fmt"

	"puppetwash/internal/puppetdb"
)

const resourceNodes = "nodes"

// NodesCollection lists the nodes known to an instance.
type NodesCollection struct {
	env      Env
	instance string
}

// NewNodesCollection returns the nodes collection of instance.
func NewNodesCollection(env Env, instance string) *NodesCollection {
	return &NodesCollection{env: env, instance: instance}
}

func (n *NodesCollection) Name() string { return NodesName }
func (n *NodesCollection) Kind() Kind   { return KindNodes }
func (n *NodesCollection) State() State {
	return newState(KindNodes, "instance", n.instance, "config", n.env.stateConfig(n.instance))
}
func (n *NodesCollection) ListMode() FetchMode { return Lazy }

// List queries every node of the instance. Each row becomes a Node carrying
// the row as its metadata.
func (n *NodesCollection) List(ctx context.Context) ([]Entry, error) {
	resp, err := n.env.fetch(ctx, n.instance, resourceNodes, nil)
	if err != nil {
		return nil, err
	}
	rows, err := resp.Records()
	if err != nil {
		return nil, err
	}

	children := make([]Entry, 0, len(rows))
	for i, row := range rows {
		certname, ok := row["certname"].(string)
		if !ok || certname == "" {
			return nil, &puppetdb.MalformedResponseError{
				Resource: resourceNodes,
				Reason:   fmt.Sprintf("row %d has no certname", i),
			}
		}
		children = append(children, NewNode(n.env, n.instance, certname, row))
	}
	return children, nil
}
