// Package puppetdb provides the PuppetDB query client used by the entry tree.
//
// # Client construction
//
// BuildClient turns one instance's configuration into an authenticated Client:
//
//   - TokenAuth: the RBAC token travels in the X-Authentication header and the
//     server is verified against the configured CA certificate.
//   - CertAuth: mutual TLS with the configured key, certificate and CA.
//
// An instance with neither shape fails with *AuthConfigError. Construction does
// no I/O at all: certificate files are read, and connections opened, on the
// first Query. File and transport problems therefore surface as
// *RemoteQueryError from Query.
//
// # Queries
//
// Query issues GET {puppetdb_url}/pdb/query/v4/{resource} with the optional
// filter serialized into the query parameter, and returns the raw JSON body as
// a Response. Response offers typed views (Records, Object, Value) that fail
// with *MalformedResponseError when the body does not have the expected shape.
//
// The client neither retries nor caches. Every error is returned to the caller
// unchanged.
package puppetdb
