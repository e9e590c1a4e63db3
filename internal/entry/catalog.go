package entry

import (
	"context"
	"net/url"

	"puppetwash/internal/formatting"
)

// Catalog is the compiled catalog of a node.
type Catalog struct {
	env      Env
	instance string
	certname string
}

// NewCatalog returns the catalog entry of certname.
func NewCatalog(env Env, instance, certname string) *Catalog {
	return &Catalog{env: env, instance: instance, certname: certname}
}

func (c *Catalog) Name() string        { return CatalogName }
func (c *Catalog) Kind() Kind          { return KindCatalog }
func (c *Catalog) ReadMode() FetchMode { return Lazy }

func (c *Catalog) State() State {
	return newState(KindCatalog, "node", c.certname, "instance", c.instance, "config", c.env.stateConfig(c.instance))
}

// resource is the catalogs endpoint for the node.
func (c *Catalog) resource() string {
	return "catalogs/" + url.PathEscape(c.certname)
}

// Read fetches the catalog and renders it.
func (c *Catalog) Read(ctx context.Context) ([]byte, error) {
	resp, err := c.env.fetch(ctx, c.instance, c.resource(), nil)
	if err != nil {
		return nil, err
	}
	catalog, err := resp.Object()
	if err != nil {
		return nil, err
	}
	return formatting.Readable(catalog), nil
}
