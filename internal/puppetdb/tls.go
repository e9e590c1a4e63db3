package puppetdb

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"puppetwash/pkg/logging"
)

// certLoadError marks failures reading or parsing certificate material.
type certLoadError struct {
	path string
	err  error
}

func (e *certLoadError) Error() string {
	return fmt.Sprintf("failed to load certificate material from %s: %v", e.path, e.err)
}

func (e *certLoadError) Unwrap() error {
	return e.err
}

// tlsSource describes the certificate files a client trusts and presents.
// Files are only read by load.
type tlsSource struct {
	caFile   string
	certFile string // empty for token auth
	keyFile  string // empty for token auth
}

// load reads the files and builds the TLS configuration.
func (s tlsSource) load() (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if s.caFile != "" {
		caCert, err := os.ReadFile(s.caFile)
		if err != nil {
			return nil, &certLoadError{path: s.caFile, err: err}
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, &certLoadError{path: s.caFile, err: fmt.Errorf("no PEM certificates found")}
		}
		tlsConfig.RootCAs = caCertPool
	}

	if s.certFile != "" || s.keyFile != "" {
		cert, err := tls.LoadX509KeyPair(s.certFile, s.keyFile)
		if err != nil {
			return nil, &certLoadError{path: s.certFile, err: err}
		}

		if len(cert.Certificate) > 0 {
			if parsed, parseErr := x509.ParseCertificate(cert.Certificate[0]); parseErr == nil {
				logging.Debug("PuppetDB", "Loaded client certificate %s (expires %s)", parsed.Subject.CommonName, parsed.NotAfter.Format("2006-01-02"))
			}
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}
