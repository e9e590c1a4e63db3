package entry

import (
	"context"
	"fmt"
	"maps"

	"puppetwash/internal/puppetdb"
	"puppetwash/internal/query"
)

// Labels of a node's children.
const (
	CatalogName = "catalog.json"
	FactsName   = "facts"
	ReportsName = "reports"
)

// Node is a managed host. Its children are fixed and built at construction.
type Node struct {
	env      Env
	instance string
	certname string
	metadata map[string]any
	children []Entry
}

// NewNode returns the node certname of instance. metadata is the node's row
// from the nodes listing and may be nil.
func NewNode(env Env, instance, certname string, metadata map[string]any) *Node {
	return &Node{
		env:      env,
		instance: instance,
		certname: certname,
		metadata: maps.Clone(metadata),
		children: []Entry{
			NewCatalog(env, instance, certname),
			NewFactsCollection(env, instance, certname),
			NewReportsCollection(env, instance, certname),
		},
	}
}

func (n *Node) Name() string        { return n.certname }
func (n *Node) Kind() Kind          { return KindNode }
func (n *Node) ListMode() FetchMode { return Eager }

func (n *Node) State() State {
	return newState(KindNode, "instance", n.instance, "node", n.certname, "config", n.env.stateConfig(n.instance))
}

// List returns catalog, facts and reports, in that order, without a request.
func (n *Node) List(context.Context) ([]Entry, error) {
	out := make([]Entry, len(n.children))
	copy(out, n.children)
	return out, nil
}

// Metadata returns the node's row from the nodes listing. It is nil for a node
// rebuilt from state.
func (n *Node) Metadata() map[string]any {
	return maps.Clone(n.metadata)
}

// LoadMetadata returns the node's listing row, querying for it when the node
// was rebuilt from state.
func (n *Node) LoadMetadata(ctx context.Context) (map[string]any, error) {
	if n.metadata != nil {
		return n.Metadata(), nil
	}
	resp, err := n.env.fetch(ctx, n.instance, resourceNodes, query.Equals("certname", n.certname))
	if err != nil {
		return nil, err
	}
	rows, err := resp.Records()
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, &puppetdb.MalformedResponseError{
			Resource: resourceNodes,
			Reason:   fmt.Sprintf("expected exactly one node %s, got %d", n.certname, len(rows)),
		}
	}
	return rows[0], nil
}
