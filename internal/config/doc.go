// Package config provides configuration loading for puppetwash.
//
// The configuration is a mapping from instance name to the connection details
// of one PuppetDB endpoint:
//
//	pe1:
//	  puppetdb_url: https://puppetdb.example.com:8081
//	  cacert: ~/.puppetlabs/ssl/ca.pem
//	  rbac_token: 0123abcd
//	oss:
//	  puppetdb_url: https://puppetdb.internal:8081
//	  cacert: /etc/puppetlabs/puppet/ssl/certs/ca.pem
//	  key: /etc/puppetlabs/puppet/ssl/private_keys/me.pem
//	  cert: /etc/puppetlabs/puppet/ssl/certs/me.pem
//
// The default location is ~/.config/puppetwash/config.yaml. The host runtime can
// also hand the same mapping over as JSON (see ParseJSON).
//
// # Authentication
//
// Each instance authenticates with exactly one AuthMode: TokenAuth when
// rbac_token is set to a non-blank value, otherwise CertAuth when both key and
// cert are set. An instance that resolves to neither is kept in the
// configuration so sibling instances keep working; the failure surfaces when a
// client is built for it.
//
// # Validation
//
// Validate reports problems as ValidationErrors. The loader logs them as warnings
// instead of failing, because one broken instance must not hide the others.
//
// Configuration values are read-only after loading. Nothing in this package
// keeps process-wide state.
package config
