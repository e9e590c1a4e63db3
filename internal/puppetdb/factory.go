package puppetdb

import (
	"strings"

	"puppetwash/internal/config"
)

// ClientFactory builds a Client for one instance's configuration.
// BuildClient is the production implementation; tests substitute doubles.
type ClientFactory func(cfg config.InstanceConfig) (Client, error)

// NewClient adapts BuildClient to the ClientFactory signature.
func NewClient(cfg config.InstanceConfig) (Client, error) {
	c, err := BuildClient(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// BuildClient creates an authenticated client for cfg without performing any I/O.
// Token authentication takes precedence over certificate authentication.
func BuildClient(cfg config.InstanceConfig) (*HTTPClient, error) {
	server := strings.TrimRight(strings.TrimSpace(cfg.PuppetDBURL), "/")

	switch auth := cfg.ResolveAuth().(type) {
	case config.TokenAuth:
		return &HTTPClient{
			server: server,
			token:  auth.Token,
			tls:    tlsSource{caFile: cfg.CACert},
		}, nil
	case config.CertAuth:
		return &HTTPClient{
			server: server,
			tls: tlsSource{
				caFile:   cfg.CACert,
				certFile: auth.CertFile,
				keyFile:  auth.KeyFile,
			},
		}, nil
	default:
		reason := "neither rbac_token nor key and cert are set"
		if strings.TrimSpace(cfg.Key) != "" || strings.TrimSpace(cfg.Cert) != "" {
			reason = "certificate authentication needs both key and cert"
		}
		return nil, &AuthConfigError{Endpoint: server, Reason: reason}
	}
}
