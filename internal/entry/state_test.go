package entry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puppetwash/internal/config"
	"puppetwash/internal/query"
)

// sampleEntries returns one entry of every kind, built the way a listing would.
func sampleEntries(t *testing.T, env Env) []Entry {
	t.Helper()
	fact, err := NewFact(env, "memory", map[string]any{"bytes": 8589934592, "total": "8 GiB"}, "n1", "pe1")
	require.NoError(t, err)
	report, err := newReportFromRow(env, "pe1", "n1", map[string]any{
		"end_time": "2024-01-01T00:00:00Z",
		"hash":     "abcdef0123456789",
	}, false)
	require.NoError(t, err)

	return []Entry{
		NewRoot(env),
		NewInstance(env, "pe1"),
		NewNodesCollection(env, "pe1"),
		NewNode(env, "pe1", "n1", map[string]any{"certname": "n1"}),
		NewCatalog(env, "pe1", "n1"),
		NewFactsCollection(env, "pe1", "n1"),
		fact,
		NewReportsCollection(env, "pe1", "n1"),
		report,
	}
}

func TestState_RoundTripEveryKind(t *testing.T) {
	env := testEnv(t, newFakePuppetDB())
	seen := map[Kind]bool{}

	for _, original := range sampleEntries(t, env) {
		t.Run(string(original.Kind()), func(t *testing.T) {
			seen[original.Kind()] = true
			encoded, err := original.State().Encode()
			require.NoError(t, err)

			rebuilt, err := ReconstructEncoded(env, original.Name(), encoded)
			require.NoError(t, err)

			assert.Equal(t, original.Kind(), rebuilt.Kind())
			assert.Equal(t, original.Name(), rebuilt.Name())
			assert.Equal(t, original.State(), rebuilt.State())

			again, err := rebuilt.State().Encode()
			require.NoError(t, err)
			assert.Equal(t, encoded, again)
		})
	}
	assert.Len(t, seen, len(Types()))
}

func TestState_ReconstructedFactReadsSameContent(t *testing.T) {
	env := testEnv(t, newFakePuppetDB())
	fact, err := NewFact(env, "os", map[string]any{"family": "RedHat", "release": map[string]any{"major": "9"}}, "n1", "pe1")
	require.NoError(t, err)

	encoded, err := fact.State().Encode()
	require.NoError(t, err)
	rebuilt, err := ReconstructEncoded(env, "os", encoded)
	require.NoError(t, err)

	want, err := fact.Read(context.Background())
	require.NoError(t, err)
	got, err := rebuilt.(Reader).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestState_ReconstructedReportQueriesByHash(t *testing.T) {
	db := newFakePuppetDB()
	db.respond("reports", query.And(query.Equals("certname", "n1"), query.Equals("hash", "h1")), `[{"hash":"h1"}]`)
	env := testEnv(t, db)

	encoded, err := NewReport(env, "pe1", "n1", "h1", "2024-01-01T00:00:00Z").State().Encode()
	require.NoError(t, err)
	rebuilt, err := ReconstructEncoded(env, "2024-01-01T00:00:00Z", encoded)
	require.NoError(t, err)

	_, err = rebuilt.(Reader).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "(and (= certname n1) (= hash h1))", db.recorded()[0].Filter)
}

func TestState_EncodeIsCanonical(t *testing.T) {
	a := State{Kind: KindCatalog, Fields: []Field{{"node", "n1"}, {"instance", "pe1"}}}
	b := State{Kind: KindCatalog, Fields: []Field{{"instance", "pe1"}, {"node", "n1"}}}

	ea, err := a.Encode()
	require.NoError(t, err)
	eb, err := b.Encode()
	require.NoError(t, err)

	assert.Equal(t, ea, eb)
	assert.Equal(t, `{"instance":"pe1","kind":"catalog","node":"n1"}`, ea)
}

func TestState_DistinctEntriesHaveDistinctIDs(t *testing.T) {
	env := testEnv(t, newFakePuppetDB())
	ids := map[string]string{}
	entries := append(sampleEntries(t, env),
		NewNode(env, "pe1", "n2", nil),
		NewReport(env, "pe1", "n1", "other-hash", ""),
	)
	for _, e := range entries {
		id, err := ID(e)
		require.NoError(t, err)
		_, dup := ids[id]
		assert.False(t, dup, "duplicate id %s", id)
		ids[id] = e.Name()
	}
}

func TestDecodeState_Errors(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		reason  string
	}{
		{name: "not json", encoded: `nope`, reason: "invalid state record"},
		{name: "unknown kind", encoded: `{"kind":"pod"}`, reason: "unknown kind"},
		{name: "missing kind", encoded: `{"instance":"pe1"}`, reason: "unknown kind"},
		{name: "missing field", encoded: `{"kind":"catalog","instance":"pe1"}`, reason: `missing field "node"`},
		{name: "missing config", encoded: `{"kind":"nodes","instance":"pe1"}`, reason: `missing field "config"`},
		{name: "extra field", encoded: `{"config":"{}","kind":"instance","instance":"pe1","node":"n1"}`, reason: `unexpected field "node"`},
		{name: "non-string value", encoded: `{"kind":"instance","instance":1}`, reason: "invalid state record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeState(tt.encoded)
			var stateErr *StateError
			require.ErrorAs(t, err, &stateErr)
			assert.Contains(t, stateErr.Error(), tt.reason)
		})
	}
}

func TestReconstruct_Errors(t *testing.T) {
	env := testEnv(t, newFakePuppetDB())
	cfg := env.stateConfig("pe1")

	t.Run("unknown instance", func(t *testing.T) {
		_, err := Reconstruct(env, "n1", newState(KindNode, "instance", "gone", "node", "n1", "config", cfg))
		assert.ErrorIs(t, err, ErrUnknownInstance)
	})

	t.Run("invalid config", func(t *testing.T) {
		for _, raw := range []string{"", "nope", `{"pe1":{"puppetdb_url":"https://x","port":1}}`} {
			_, err := Reconstruct(env, "n1", newState(KindNode, "instance", "pe1", "node", "n1", "config", raw))
			var stateErr *StateError
			require.ErrorAs(t, err, &stateErr, raw)
			assert.Contains(t, stateErr.Error(), "invalid config")
		}
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := Reconstruct(env, "n1", newState(KindNode, "instance", "pe1"))
		var stateErr *StateError
		assert.ErrorAs(t, err, &stateErr)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Reconstruct(env, "x", State{Kind: "pod"})
		var stateErr *StateError
		assert.ErrorAs(t, err, &stateErr)
	})

	t.Run("invalid fact value", func(t *testing.T) {
		_, err := Reconstruct(env, "f", newState(KindFact, "name", "f", "value", "{", "node", "n1", "instance", "pe1", "config", cfg))
		var stateErr *StateError
		assert.ErrorAs(t, err, &stateErr)
	})
}

func TestReconstruct_DoesNotQuery(t *testing.T) {
	db := newFakePuppetDB()
	env := testEnv(t, db)
	for _, e := range sampleEntries(t, env) {
		_, err := Reconstruct(env, e.Name(), e.State())
		require.NoError(t, err)
	}
	assert.Empty(t, db.recorded())
	assert.Zero(t, db.clientsBuilt())
}

func TestReconstruct_ConfigComesFromState(t *testing.T) {
	db := newFakePuppetDB()
	db.respond("catalogs/n1", nil, `{"name":"n1"}`)
	built := Env{
		Config:    config.Config{"pe9": {PuppetDBURL: "https://pe9", CACert: "ca", RBACToken: "t"}},
		NewClient: db.factory(),
	}
	encoded, err := NewCatalog(built, "pe9", "n1").State().Encode()
	require.NoError(t, err)

	// The rebuilding side knows no instances at all.
	rebuilt, err := ReconstructEncoded(Env{NewClient: db.factory()}, CatalogName, encoded)
	require.NoError(t, err)
	_, err = rebuilt.(Reader).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, db.recorded(), 1)
	assert.Equal(t, "https://pe9", db.recorded()[0].Server)
}

func TestReconstruct_RootListsInstancesFromState(t *testing.T) {
	built := Env{Config: config.Config{
		"pe9":  {PuppetDBURL: "https://pe9", CACert: "ca", RBACToken: "t"},
		"lab2": {PuppetDBURL: "https://lab2", CACert: "ca", Key: "k.pem", Cert: "c.pem"},
	}}
	encoded, err := NewRoot(built).State().Encode()
	require.NoError(t, err)

	rebuilt, err := ReconstructEncoded(Env{Config: testConfig()}, RootName, encoded)
	require.NoError(t, err)
	children, err := rebuilt.(Lister).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"lab2", "pe9"}, names(children))
}

func TestState_ConfigScopedToInstance(t *testing.T) {
	env := Env{Config: config.Config{
		"pe1": {PuppetDBURL: "https://x", CACert: "ca", RBACToken: "t"},
		"pe2": {PuppetDBURL: "https://y", CACert: "ca", RBACToken: "u"},
	}}

	decode := func(e Entry) config.Config {
		raw, ok := e.State().Get("config")
		require.True(t, ok, e.Kind())
		var cfg config.Config
		require.NoError(t, json.Unmarshal([]byte(raw), &cfg))
		return cfg
	}

	assert.Equal(t, env.Config, decode(NewRoot(env)))
	assert.Equal(t, []string{"pe1"}, decode(NewInstance(env, "pe1")).Names())
	assert.Equal(t, []string{"pe2"}, decode(NewReportsCollection(env, "pe2", "n1")).Names())
	assert.Equal(t, env.Config["pe2"], decode(NewNode(env, "pe2", "n1", nil))["pe2"])
}
