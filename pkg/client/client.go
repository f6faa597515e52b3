// Package client is a typed HTTP client for the runnerd API, speaking the
// same pkg/types wire schema as the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/runnerhq/runnerd/pkg/types"
)

// Client is an HTTP client for a runnerd server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL, e.g. "http://host:8080".
//
// The underlying http.Client carries no timeout: run calls block for as long
// as the remote command runs. Bound individual calls with the context.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// doRequest performs an HTTP request with an optional JSON body.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// apiError drains a non-2xx response into an error.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var er types.ErrorResponse
	if json.Unmarshal(body, &er) == nil && er.Error != "" {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, er.Error)
	}
	return fmt.Errorf("API error (status %d): %s", resp.StatusCode, bytes.TrimSpace(body))
}

// Info fetches the server metadata.
func (c *Client) Info(ctx context.Context) (*types.InfoResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/info", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var info types.InfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &info, nil
}

// Run executes a command on the server and blocks until it finishes.
// A RunStatus with status "failure" or "error" is not a Go error: the API
// call itself succeeded.
func (c *Client) Run(ctx context.Context, req types.RunRequest) (*types.RunStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/run", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var status types.RunStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &status, nil
}

// RunScript executes a script through an interpreter on the server and
// blocks until it finishes.
func (c *Client) RunScript(ctx context.Context, req types.ScriptRequest) (*types.RunStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/runscript", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The server answers 500 with a RunStatus body when it could not write
	// the script; surface that as the status it is.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusInternalServerError {
		return nil, apiError(resp)
	}

	var status types.RunStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &status, nil
}

// FetchFile downloads a file from the server's working directory into w and
// returns the number of bytes copied.
func (c *Client) FetchFile(ctx context.Context, path string, w io.Writer) (int64, error) {
	q := url.Values{}
	q.Set("path", path)

	resp, err := c.doRequest(ctx, http.MethodGet, "/api/file?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, apiError(resp)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("read file body: %w", err)
	}
	return n, nil
}

// Health reports whether the server answers its liveness probe.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}
