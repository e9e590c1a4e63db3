package entry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"puppetwash/internal/config"
	"puppetwash/internal/puppetdb"
	"puppetwash/internal/query"
)

// recordedQuery is one request seen by fakeClient.
type recordedQuery struct {
	Server   string
	Resource string
	Filter   string
}

// fakePuppetDB answers queries from canned bodies keyed by resource and
// rendered filter, and records every request and client construction.
type fakePuppetDB struct {
	mu        sync.Mutex
	bodies    map[string]string
	errs      map[string]error
	queries   []recordedQuery
	clientsBy []string
}

func newFakePuppetDB() *fakePuppetDB {
	return &fakePuppetDB{bodies: map[string]string{}, errs: map[string]error{}}
}

func fakeKey(resource string, filter query.Expr) string {
	return resource + " " + query.Format(filter)
}

func (f *fakePuppetDB) respond(resource string, filter query.Expr, body string) {
	f.bodies[fakeKey(resource, filter)] = body
}

func (f *fakePuppetDB) fail(resource string, filter query.Expr, err error) {
	f.errs[fakeKey(resource, filter)] = err
}

func (f *fakePuppetDB) recorded() []recordedQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedQuery(nil), f.queries...)
}

func (f *fakePuppetDB) clientsBuilt() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clientsBy)
}

// factory returns a ClientFactory handing out clients bound to this fake.
func (f *fakePuppetDB) factory() puppetdb.ClientFactory {
	return func(cfg config.InstanceConfig) (puppetdb.Client, error) {
		f.mu.Lock()
		f.clientsBy = append(f.clientsBy, cfg.PuppetDBURL)
		f.mu.Unlock()
		return &fakeClient{db: f, server: cfg.PuppetDBURL}, nil
	}
}

type fakeClient struct {
	db     *fakePuppetDB
	server string
}

func (c *fakeClient) Query(_ context.Context, resource string, filter query.Expr) (puppetdb.Response, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	c.db.queries = append(c.db.queries, recordedQuery{Server: c.server, Resource: resource, Filter: query.Format(filter)})
	key := fakeKey(resource, filter)
	if err, ok := c.db.errs[key]; ok {
		return puppetdb.Response{}, err
	}
	body, ok := c.db.bodies[key]
	if !ok {
		return puppetdb.Response{}, &puppetdb.RemoteQueryError{Resource: resource, Kind: puppetdb.KindServer, StatusCode: 404, Body: fmt.Sprintf("no canned response for %q", key)}
	}
	return puppetdb.Response{Resource: resource, Body: json.RawMessage(body)}, nil
}

func testConfig() config.Config {
	return config.Config{
		"pe1": {PuppetDBURL: "https://x", CACert: "ca", RBACToken: "t"},
	}
}

func testEnv(t *testing.T, db *fakePuppetDB) Env {
	t.Helper()
	return Env{Config: testConfig(), NewClient: db.factory()}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

func kinds(entries []Entry) []Kind {
	out := make([]Kind, len(entries))
	for i, e := range entries {
		out[i] = e.Kind()
	}
	return out
}
