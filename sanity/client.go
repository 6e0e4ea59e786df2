// Package sanity is a minimal read-only client for the Sanity content API.
// It issues GROQ queries over plain HTTP GETs against the hosted query
// endpoint and decodes the response envelope. Writes, drafts, and the
// realtime listener API are out of scope: the site only reads published
// documents.
package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultAPIHost is the public query host; {projectID}.api.sanity.io.
	DefaultAPIHost = "api.sanity.io"
	// DefaultAPIVersion pins the dataset query API version.
	DefaultAPIVersion = "v2023-10-01"
)

// ErrNotConfigured is returned when project or dataset identifiers are
// missing. Callers treat it like any other upstream failure: log and
// degrade to an empty result.
var ErrNotConfigured = errors.New("sanity: project or dataset not configured")

// Client queries a single Sanity project/dataset. The zero value is an
// unconfigured client whose queries fail with ErrNotConfigured.
type Client struct {
	ProjectID  string
	Dataset    string
	Token      string // optional read token; sent as a bearer credential when set
	APIHost    string // defaults to DefaultAPIHost
	APIVersion string // defaults to DefaultAPIVersion
	BaseURL    string // overrides the derived query endpoint (tests)
	HTTPClient *http.Client
}

// NewClient returns a client for the given project and dataset with a
// bounded-timeout HTTP client.
func NewClient(projectID, dataset, token string) *Client {
	return &Client{
		ProjectID:  projectID,
		Dataset:    dataset,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether the client has the identifiers it needs to
// reach the dataset.
func (c *Client) Configured() bool {
	return c.ProjectID != "" && c.Dataset != ""
}

func (c *Client) endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	host := c.APIHost
	if host == "" {
		host = DefaultAPIHost
	}
	version := c.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	return fmt.Sprintf("https://%s.%s/%s/data/query/%s", c.ProjectID, host, version, c.Dataset)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// Query runs a GROQ query with optional bound parameters and returns the
// raw `result` field of the response envelope. Parameter values are
// JSON-encoded and passed as $name query parameters, which is how the API
// distinguishes a string from a number and keeps quoting round-trip safe.
func (c *Client) Query(ctx context.Context, groq string, params map[string]any) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("sanity: encode param $%s: %w", name, err)
		}
		q.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("sanity: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("sanity: query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sanity: query status %d: %s", resp.StatusCode, body)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("sanity: decode response: %w", err)
	}
	return envelope.Result, nil
}
