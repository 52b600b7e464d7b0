// Package notion is a minimal client for the Notion HTTP API, covering the
// three calls this service needs: database queries, page retrieval and page
// creation.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"

	// MaxPageSize is the largest result page the API will return.
	MaxPageSize = 100
)

// Client talks to the Notion API. Zero value is not usable; use NewClient.
type Client struct {
	httpc   *http.Client
	baseURL string
	token   string
}

// NewClient builds a client authenticated with the given integration token.
func NewClient(token string) *Client {
	return &Client{
		httpc:   &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		token:   token,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake API.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// QueryRequest is the body of a database query.
type QueryRequest struct {
	Filter      json.RawMessage `json:"filter,omitempty"`
	Sorts       []Sort          `json:"sorts,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
	PageSize    int             `json:"page_size,omitempty"`
}

// Sort orders query results by a database property.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// QueryResponse is one page of database query results.
type QueryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// QueryDatabase runs a single query against a database and returns one page
// of results.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) (*QueryResponse, error) {
	if req.PageSize <= 0 || req.PageSize > MaxPageSize {
		req.PageSize = MaxPageSize
	}
	var out QueryResponse
	path := fmt.Sprintf("/v1/databases/%s/query", databaseID)
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryAll follows continuation cursors until the result set is exhausted and
// returns every matching page.
func (c *Client) QueryAll(ctx context.Context, databaseID string, req QueryRequest) ([]Page, error) {
	var pages []Page
	for {
		resp, err := c.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, err
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == nil {
			return pages, nil
		}
		req.StartCursor = *resp.NextCursor
	}
}

// RetrievePage fetches a single page by id.
func (c *Client) RetrievePage(ctx context.Context, pageID string) (*Page, error) {
	var out Page
	if err := c.do(ctx, http.MethodGet, "/v1/pages/"+pageID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePageRequest creates a page inside a parent database.
type CreatePageRequest struct {
	Parent     Parent         `json:"parent"`
	Properties map[string]any `json:"properties"`
}

// Parent identifies the database a created page belongs to.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// CreatePage writes a new page into a database.
func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	var out Page
	if err := c.do(ctx, http.MethodPost, "/v1/pages", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// API error bodies are small JSON; keep a bounded excerpt for logs.
		excerpt, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("notion: %s %s: status %d: %s", method, path, res.StatusCode, excerpt)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// TitleNotEmpty builds a filter matching pages whose title property is set.
// Half-created database rows have an empty title and should never surface.
func TitleNotEmpty(property string) json.RawMessage {
	f := map[string]any{
		"property": property,
		"title":    map[string]any{"is_not_empty": true},
	}
	b, _ := json.Marshal(f)
	return b
}

// TitleProperty builds the property value for a page title.
func TitleProperty(text string) any {
	return map[string]any{
		"title": []any{
			map[string]any{"text": map[string]any{"content": text}},
		},
	}
}

// URLProperty builds the property value for a URL field.
func URLProperty(u string) any {
	return map[string]any{"url": u}
}
