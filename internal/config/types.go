package config

import (
	"sort"
	"strings"

	"puppetwash/internal/secret"
)

// InstanceConfig describes how to reach and authenticate against one PuppetDB instance.
type InstanceConfig struct {
	PuppetDBURL string `yaml:"puppetdb_url" json:"puppetdb_url"`
	CACert      string `yaml:"cacert" json:"cacert"`
	RBACToken   string `yaml:"rbac_token,omitempty" json:"rbac_token,omitempty"`
	Key         string `yaml:"key,omitempty" json:"key,omitempty"`
	Cert        string `yaml:"cert,omitempty" json:"cert,omitempty"`
}

// Config maps instance names to their configuration.
type Config map[string]InstanceConfig

// Names returns the configured instance names in sorted order.
func (c Config) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instance returns the configuration for the named instance.
func (c Config) Instance(name string) (InstanceConfig, bool) {
	ic, ok := c[name]
	return ic, ok
}

// AuthMode is the resolved authentication shape of an instance.
// It is implemented by TokenAuth and CertAuth only.
type AuthMode interface {
	authMode()
}

// TokenAuth authenticates with a PE RBAC token.
type TokenAuth struct {
	Token secret.Token
}

// CertAuth authenticates with a client certificate and key (mutual TLS).
type CertAuth struct {
	KeyFile  string
	CertFile string
}

func (TokenAuth) authMode() {}
func (CertAuth) authMode()  {}

// ResolveAuth picks the authentication mode for the instance.
// A non-blank token wins over certificate fields; a blank token counts as absent.
// It returns nil when neither a token nor a complete key/cert pair is present.
func (ic InstanceConfig) ResolveAuth() AuthMode {
	if token := strings.TrimSpace(ic.RBACToken); token != "" {
		return TokenAuth{Token: secret.NewToken(token)}
	}
	if strings.TrimSpace(ic.Key) != "" && strings.TrimSpace(ic.Cert) != "" {
		return CertAuth{KeyFile: ic.Key, CertFile: ic.Cert}
	}
	return nil
}
