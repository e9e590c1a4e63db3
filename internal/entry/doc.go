// Package entry models PuppetDB as a read-only tree of entries.
//
//	puppet (Root)
//	└── <instance> (Instance)
//	    └── nodes (NodesCollection)
//	        └── <certname> (Node)
//	            ├── catalog.json (Catalog)
//	            ├── facts (FactsCollection)
//	            │   └── <fact> (Fact)
//	            └── reports (ReportsCollection)
//	                └── <end_time> (Report)
//
// # Capabilities
//
// Every entry implements Entry. Containers also implement Lister, leaves
// implement Reader. Entries that carry a record from their parent's listing
// implement MetadataHolder, and Report implements Attributed for its mtime.
//
// Each Lister and Reader declares a FetchMode. Lazy operations query PuppetDB
// when invoked. Eager ones were computed at construction and never issue a
// request: Node's three children are static, and a Fact's value arrives with
// the facts listing.
//
// # State
//
// Processes are short-lived. An entry is rebuilt in a later process from its
// State (an ordered list of named fields declared per Kind, see TypeSpec) and
// the root configuration:
//
//	e, err := entry.Reconstruct(env, name, state)
//
// No entry depends on anything an ancestor held in memory. Every request an
// entry issues is derived from its own State and env.Config.
//
// # Concurrency
//
// Entries are immutable after construction and build a fresh client per
// operation, so concurrent use needs no locking.
package entry
