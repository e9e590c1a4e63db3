// Package plugin implements the host-facing side of puppetwash.
//
// The host drives the tree through five methods: Init returns the root
// descriptor, List returns the children of an entry, Read returns an entry's
// content, Metadata returns its structured metadata and Schema describes
// every entry type. Entries are addressed by the opaque state string found in
// their descriptor; the plugin rebuilds the entry from it on every call, so
// no state lives between invocations.
//
// A descriptor advertises an entry's methods. A method whose result is
// computed when the entry is built is embedded in the descriptor as a
// [name, result] pair so the host does not have to call back for it:
//
//	{
//	  "type_id": "node",
//	  "name": "web01.example.com",
//	  "methods": [["list", [...]], "metadata"],
//	  "partial_metadata": {"certname": "web01.example.com"},
//	  "state": "{\"instance\":\"pe1\",\"kind\":\"node\",\"node\":\"web01.example.com\"}"
//	}
package plugin
