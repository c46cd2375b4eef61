// Package restapi reads the federation's REST backend.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/arbitres/console/core"
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 4 << 10

// Config is the resolved backend configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// ConfigFrom resolves the backend section of conf.
func ConfigFrom(conf *core.Config) Config {
	return Config{
		BaseURL: conf.Backend.BaseURL(),
		Timeout: conf.Backend.Timeout,
	}
}

// APIError is a non-2xx backend answer.
type APIError struct {
	Status int    `json:"-"`
	Detail string `json:"detail"`
}

func (e APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend error %d", e.Status)
}

// Client is a JSON client bound to one base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(conf Config) *Client {
	vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.BaseURL, "BaseURL"),
	).CheckAndPanic()

	return &Client{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		http:    &http.Client{Timeout: conf.Timeout},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// MediaURL turns an uploaded file path into an absolute URL.
// Absolute URLs pass through; relative paths are served from the host root, not under /api.
func (c *Client) MediaURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	root := strings.TrimSuffix(c.baseURL, "/api")
	return root + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "marshalling body")
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := core.AccessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do performs the request and decodes the JSON answer. Failures are *core.FetchError.
func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, body interface{}) (interface{}, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, core.NewFetchError(core.FetchTransport, resource, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, core.NewFetchError(core.FetchTransport, resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if jErr := json.Unmarshal(raw, apiErr); jErr != nil || apiErr.Detail == "" {
			apiErr.Detail = strings.TrimSpace(string(raw))
		}
		return nil, &core.FetchError{Kind: core.FetchStatus, Resource: resource, Status: resp.StatusCode, Err: apiErr}
	}

	var payload interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, core.NewFetchError(core.FetchPayload, resource, errors.Wrap(err, "decoding response"))
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, resource, path string, query url.Values) (interface{}, error) {
	return c.do(ctx, resource, http.MethodGet, path, query, nil)
}

func (c *Client) post(ctx context.Context, resource, path string, body interface{}) (interface{}, error) {
	return c.do(ctx, resource, http.MethodPost, path, nil, body)
}

// AsAPIError extracts the backend answer from a fetch error.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
