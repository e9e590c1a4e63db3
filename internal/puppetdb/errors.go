package puppetdb

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// AuthConfigError indicates an instance has neither a token nor a complete
// key/cert pair configured.
type AuthConfigError struct {
	// Endpoint is the PuppetDB URL of the instance.
	Endpoint string
	// Reason describes what is missing.
	Reason string
}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthConfigError) Error() string {
	return fmt.Sprintf("no usable authentication configured for %s: %s (set rbac_token, or both key and cert)", e.Endpoint, e.Reason)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthConfigError) Is(target error) bool {
	_, ok := target.(*AuthConfigError)
	return ok
}

// ErrorKind categorizes a RemoteQueryError.
type ErrorKind int

const (
	// KindUnknown indicates an unclassified failure.
	KindUnknown ErrorKind = iota
	// KindTLS indicates a TLS/certificate failure, including unreadable certificate files.
	KindTLS
	// KindDNS indicates a DNS resolution failure.
	KindDNS
	// KindTimeout indicates the request timed out.
	KindTimeout
	// KindNetwork indicates a network connectivity error (e.g., refused, unreachable).
	KindNetwork
	// KindAuth indicates the server rejected the credentials (401/403).
	KindAuth
	// KindServer indicates the server answered with an error status.
	KindServer
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTLS:
		return "TLS certificate error"
	case KindDNS:
		return "DNS resolution error"
	case KindTimeout:
		return "Connection timeout"
	case KindNetwork:
		return "Network error"
	case KindAuth:
		return "Authentication rejected"
	case KindServer:
		return "Server error"
	default:
		return "Query error"
	}
}

// RemoteQueryError indicates a query could not be completed.
type RemoteQueryError struct {
	// Resource is the queried resource, e.g. "nodes" or "catalogs/n1".
	Resource string
	// Kind categorizes the failure.
	Kind ErrorKind
	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int
	// Body is the (truncated) response body for server-side failures.
	Body string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *RemoteQueryError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s querying %s: HTTP %d: %s", e.Kind, e.Resource, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s querying %s: HTTP %d", e.Kind, e.Resource, e.StatusCode)
	default:
		return fmt.Sprintf("%s querying %s: %v", e.Kind, e.Resource, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *RemoteQueryError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is() to work with wrapped errors.
func (e *RemoteQueryError) Is(target error) bool {
	_, ok := target.(*RemoteQueryError)
	return ok
}

// MalformedResponseError indicates a response did not have the expected shape.
type MalformedResponseError struct {
	Resource string
	Reason   string
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.Resource, e.Reason)
}

// Is allows errors.Is() to work with wrapped errors.
func (e *MalformedResponseError) Is(target error) bool {
	_, ok := target.(*MalformedResponseError)
	return ok
}

// classifyTransportError wraps a transport-level failure into a RemoteQueryError.
func classifyTransportError(resource string, err error) *RemoteQueryError {
	qe := &RemoteQueryError{Resource: resource, Err: err}

	var dnsErr *net.DNSError
	switch {
	case isTLSError(err):
		qe.Kind = KindTLS
	case errors.As(err, &dnsErr):
		qe.Kind = KindDNS
	case isTimeoutError(err):
		qe.Kind = KindTimeout
	case isNetworkError(err.Error()):
		qe.Kind = KindNetwork
	default:
		qe.Kind = KindUnknown
	}
	return qe
}

// isTLSError checks if the error is related to TLS/certificate issues.
func isTLSError(err error) bool {
	var certErr *x509.CertificateInvalidError
	var hostErr *x509.HostnameError
	var unknownAuthErr *x509.UnknownAuthorityError
	var systemRootsErr *x509.SystemRootsError
	var loadErr *certLoadError

	if errors.As(err, &certErr) || errors.As(err, &hostErr) ||
		errors.As(err, &unknownAuthErr) || errors.As(err, &systemRootsErr) ||
		errors.As(err, &loadErr) {
		return true
	}

	errStr := err.Error()
	for _, keyword := range []string{"x509:", "certificate", "tls:", "TLS handshake"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// isTimeoutError checks if the error is a timeout.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isNetworkError checks if the error string indicates a network connectivity issue.
func isNetworkError(errStr string) bool {
	for _, keyword := range []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
		"connect:",
	} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
