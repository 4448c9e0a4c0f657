package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the workspace API endpoint.
const DefaultBaseURL = "https://api.workspace.example.com/v1"

// DefaultTimeout bounds each API request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

const queryPageSize = 100

// Client talks to the content-workspace API. A query-level failure returned
// from Client methods is fatal to the whole sync run; only per-record block
// fetches are retried-around by skipping the record upstream.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a workspace client. The token is required; baseURL and
// timeout may be zero to use the production endpoint and default timeout.
func NewClient(token, baseURL string, timeout time.Duration) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("workspace token is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		token:   token,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type queryFilter struct {
	Property string `json:"property"`
	Checkbox struct {
		Equals bool `json:"equals"`
	} `json:"checkbox"`
}

type querySort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type queryRequest struct {
	Filter      queryFilter `json:"filter"`
	Sorts       []querySort `json:"sorts"`
	StartCursor string      `json:"start_cursor,omitempty"`
	PageSize    int         `json:"page_size,omitempty"`
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type blocksResponse struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

// QueryCollection returns all published pages of a collection, ordered by
// the Date property descending. Pagination cursors are followed until the
// API reports no more pages.
func (c *Client) QueryCollection(ctx context.Context, collectionID string) ([]Page, error) {
	filter := queryFilter{Property: "Published"}
	filter.Checkbox.Equals = true

	var pages []Page
	cursor := ""
	for {
		req := queryRequest{
			Filter:      filter,
			Sorts:       []querySort{{Property: "Date", Direction: "descending"}},
			StartCursor: cursor,
			PageSize:    queryPageSize,
		}

		var resp queryResponse
		endpoint := fmt.Sprintf("%s/collections/%s/query", c.baseURL, collectionID)
		if err := c.do(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
			return nil, fmt.Errorf("failed to query collection %s: %w", collectionID, err)
		}

		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return pages, nil
}

// FetchBlocks returns the full block list of a page, following the block
// children cursor until exhausted.
func (c *Client) FetchBlocks(ctx context.Context, pageID string) ([]Block, error) {
	var blocks []Block
	cursor := ""
	for {
		q := url.Values{"page_size": {strconv.Itoa(queryPageSize)}}
		if cursor != "" {
			q.Set("start_cursor", cursor)
		}
		endpoint := fmt.Sprintf("%s/blocks/%s/children?%s", c.baseURL, pageID, q.Encode())

		var resp blocksResponse
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch blocks for page %s: %w", pageID, err)
		}

		blocks = append(blocks, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	return blocks, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
