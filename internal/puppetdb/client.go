package puppetdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"puppetwash/internal/query"
	"puppetwash/internal/secret"
	"puppetwash/pkg/logging"
	pkgstrings "puppetwash/pkg/strings"

	"github.com/google/uuid"
)

const (
	// queryPath is the PuppetDB v4 query API prefix.
	queryPath = "/pdb/query/v4/"

	// tokenHeader carries PE RBAC tokens.
	tokenHeader = "X-Authentication"

	defaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 512

	// maxResponseBody bounds a successful response. Catalogs and reports of
	// large nodes run to tens of megabytes.
	maxResponseBody = 256 << 20
)

// Client issues queries against one PuppetDB instance.
type Client interface {
	Query(ctx context.Context, resource string, filter query.Expr) (Response, error)
}

// HTTPClient is the Client implementation speaking the PuppetDB HTTP API.
type HTTPClient struct {
	server string
	token  secret.Token
	tls    tlsSource
	// maxBody overrides maxResponseBody when positive.
	maxBody int64

	// transport is built on first use from tls.
	once       sync.Once
	httpClient *http.Client
	initErr    error
}

// Server returns the base URL of the instance.
func (c *HTTPClient) Server() string {
	return c.server
}

// UsesToken reports whether the client authenticates with an RBAC token.
func (c *HTTPClient) UsesToken() bool {
	return !c.token.IsEmpty()
}

func (c *HTTPClient) client() (*http.Client, error) {
	c.once.Do(func() {
		tlsConfig, err := c.tls.load()
		if err != nil {
			c.initErr = err
			return
		}
		c.httpClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: tlsConfig,
				IdleConnTimeout: 90 * time.Second,
			},
			Timeout: defaultTimeout,
		}
	})
	return c.httpClient, c.initErr
}

// Query fetches resource, filtered by filter when it is non-nil.
func (c *HTTPClient) Query(ctx context.Context, resource string, filter query.Expr) (Response, error) {
	requestID := uuid.New().String()
	logging.DebugAttrs("PuppetDB", "query",
		slog.String("request_id", requestID),
		slog.String("server", c.server),
		slog.String("resource", resource),
		slog.String("filter", query.Format(filter)),
	)

	httpClient, err := c.client()
	if err != nil {
		return Response{}, classifyTransportError(resource, err)
	}

	endpoint, err := c.endpoint(resource, filter)
	if err != nil {
		return Response{}, &RemoteQueryError{Resource: resource, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, &RemoteQueryError{Resource: resource, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if !c.token.IsEmpty() {
		req.Header.Set(tokenHeader, c.token.Value())
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return Response{}, classifyTransportError(resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		kind := KindServer
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = KindAuth
		}
		return Response{}, &RemoteQueryError{
			Resource:   resource,
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Body:       pkgstrings.Summarize(string(body), pkgstrings.ErrorBodyMaxLen),
		}
	}

	limit := c.bodyLimit()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return Response{}, classifyTransportError(resource, fmt.Errorf("failed to read response body: %w", err))
	}
	if int64(len(body)) > limit {
		return Response{}, &MalformedResponseError{Resource: resource, Reason: fmt.Sprintf("body exceeds %d bytes", limit)}
	}
	if !json.Valid(body) {
		return Response{}, &MalformedResponseError{Resource: resource, Reason: "body is not valid JSON"}
	}

	logging.Debug("PuppetDB", "Query %s (%s) returned %d bytes", resource, requestID, len(body))
	return Response{Resource: resource, Body: body}, nil
}

func (c *HTTPClient) bodyLimit() int64 {
	if c.maxBody > 0 {
		return c.maxBody
	}
	return maxResponseBody
}

func (c *HTTPClient) endpoint(resource string, filter query.Expr) (string, error) {
	u, err := url.Parse(c.server + queryPath + resource)
	if err != nil {
		return "", fmt.Errorf("invalid query URL for %s: %w", resource, err)
	}

	data, err := query.Marshal(filter)
	if err != nil {
		return "", err
	}
	if data != nil {
		values := url.Values{}
		values.Set("query", string(data))
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}
