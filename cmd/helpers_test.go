package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"puppetwash/internal/config"
	"puppetwash/internal/entry"
	"puppetwash/internal/puppetdb"
	"puppetwash/internal/query"
)

const testConfigYAML = `pe1:
  puppetdb_url: https://puppetdb.example.com:8081
  cacert: /etc/puppetlabs/puppet/ssl/certs/ca.pem
  rbac_token: secret-token
`

// pe1Env is the environment testConfigYAML loads into.
func pe1Env() entry.Env {
	return entry.Env{Config: config.Config{"pe1": {
		PuppetDBURL: "https://puppetdb.example.com:8081",
		CACert:      "/etc/puppetlabs/puppet/ssl/certs/ca.pem",
		RBACToken:   "secret-token",
	}}}
}

// stateOf returns the encoded state of e.
func stateOf(t *testing.T, e entry.Entry) string {
	t.Helper()
	encoded, err := e.State().Encode()
	require.NoError(t, err)
	return encoded
}

// cannedPuppetDB answers queries keyed by "resource filter".
type cannedPuppetDB struct {
	mu      sync.Mutex
	bodies  map[string]string
	errs    map[string]error
	queries []string
}

func (c *cannedPuppetDB) Query(_ context.Context, resource string, filter query.Expr) (puppetdb.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := resource + " " + query.Format(filter)
	c.queries = append(c.queries, key)
	if err, ok := c.errs[key]; ok {
		return puppetdb.Response{}, err
	}
	body, ok := c.bodies[key]
	if !ok {
		return puppetdb.Response{}, &puppetdb.RemoteQueryError{Resource: resource, Kind: puppetdb.KindServer, StatusCode: 404, Body: fmt.Sprintf("unexpected query %q", key)}
	}
	return puppetdb.Response{Resource: resource, Body: json.RawMessage(body)}, nil
}

// useCannedPuppetDB points the commands at a config file with instance pe1
// whose queries are answered by db.
func useCannedPuppetDB(t *testing.T, db *cannedPuppetDB) {
	t.Helper()
	if db.errs == nil {
		db.errs = map[string]error{}
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o600))

	origEnv, origPath := newEnv, configPath
	t.Cleanup(func() { newEnv, configPath = origEnv, origPath })

	configPath = path
	newEnv = func(cfg config.Config) entry.Env {
		return entry.Env{
			Config: cfg,
			NewClient: func(config.InstanceConfig) (puppetdb.Client, error) {
				return db, nil
			},
		}
	}
}

// resetFlags restores flag variables, which persist between executions of rootCmd.
func resetFlags() {
	debugLogging = false
	queryTimeout = time.Minute
	entryName = ""
	lsOutputFormat = "table"
	lsQuiet = false
	metaOutputFormat = "table"
	treeDepth = 4
	treeConcurrency = 8
}

// execute runs rootCmd with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	_, err := rootCmd.ExecuteC()
	return stdout.String(), err
}

const reportsListing = "reports (extract [end_time environment status noop puppet_version producer hash] (= certname web01))"

func nodeFixture() *cannedPuppetDB {
	bodies := map[string]string{
		"nodes nil":                `[{"certname":"web01"},{"certname":"db01"}]`,
		"catalogs/web01 nil":       `{"name":"web01","version":"1700000000"}`,
		"facts (= certname web01)": `[{"name":"kernel","value":"Linux"},{"name":"os","value":{"family":"RedHat"}}]`,
	}
	bodies[reportsListing] = `[{"end_time":"2024-01-02T03:04:05Z","hash":"abcdef123456","status":"changed"}]`
	bodies["facts (= certname db01)"] = `[]`
	bodies["reports (extract [end_time environment status noop puppet_version producer hash] (= certname db01))"] = `[]`
	return &cannedPuppetDB{bodies: bodies}
}
