// Package docindex is a small HTTP client for the hosted document-index
// (search) API.
package docindex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwiater/ragnote/internal/logging"
)

const searchPath = "/v1/studio/search"

// SearchURL derives the document-index API root from the platform base URL.
func SearchURL(apiBaseURL string) string {
	return strings.TrimRight(apiBaseURL, "/") + searchPath
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("docindex: %s %s returned %s", e.Method, e.Endpoint, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsAuthError reports whether the service rejected the credentials.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsAuthError reports whether err wraps an APIError for HTTP 401 or 403.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsAuthError()
}

// Client talks to one document-index deployment.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	debug   bool
}

// New constructs a Client for baseURL, which should already include the
// search API prefix (see SearchURL). A zero timeout leaves requests unbounded.
// With debug set, request and response payloads are written to the log.
func New(baseURL, token string, timeout time.Duration, debug bool) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
		debug:   debug,
	}
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListNamespaces returns the namespaces visible to the token.
func (c *Client) ListNamespaces(ctx context.Context) ([]string, error) {
	var namespaces []string
	if err := c.do(ctx, http.MethodGet, "/namespaces", nil, &namespaces); err != nil {
		return nil, err
	}
	return namespaces, nil
}

// ListDocuments returns the documents stored in a collection.
func (c *Client) ListDocuments(ctx context.Context, namespace, collection string) ([]Document, error) {
	endpoint := fmt.Sprintf("/collections/%s/%s/docs", url.PathEscape(namespace), url.PathEscape(collection))
	var docs []Document
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// ListChunks returns the indexed chunks of one document.
func (c *Client) ListChunks(ctx context.Context, namespace, collection, document string) ([]DocumentChunk, error) {
	endpoint := fmt.Sprintf("/collections/%s/%s/docs/%s/chunks",
		url.PathEscape(namespace), url.PathEscape(collection), url.PathEscape(document))
	var chunks []DocumentChunk
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// Search queries an index over a collection.
func (c *Client) Search(ctx context.Context, namespace, collection, index string, req SearchRequest) ([]SearchResult, error) {
	endpoint := fmt.Sprintf("/collections/%s/%s/indexes/%s/search",
		url.PathEscape(namespace), url.PathEscape(collection), url.PathEscape(index))
	var results []SearchResult
	if err := c.do(ctx, http.MethodPost, endpoint, req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	requestID := uuid.NewString()
	if c.debug {
		logging.LogRequest("RAGNOTE->INDEX", "docindex", requestID, method+" "+endpoint, body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("docindex request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if c.debug {
		logging.LogRequest("INDEX->RAGNOTE", "docindex", requestID, method+" "+endpoint, raw)
	} else {
		logging.LogEvent("[INDEX] %s %s -> %d (request_id=%s)", method, endpoint, resp.StatusCode, requestID)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s response: %w", endpoint, err)
	}
	return nil
}
