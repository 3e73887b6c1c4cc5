package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/convertohq/converto/core"
	"github.com/convertohq/converto/ingestion"
)

const (
	defaultBaseURL = "https://api.notion.com"

	// apiVersion is the Notion-Version header value. The property shapes
	// this client reads are tied to it.
	apiVersion = "2022-06-28"
)

// Client reads transcript pages from a Notion database and writes back the
// indexed flag. It implements ingestion.Source.
//
// The database is expected to carry a "Name" title property, a "Course"
// select property and an "Indexed" checkbox property; page bodies are
// paragraph blocks.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	databaseID string
	logger     *slog.Logger
}

var _ ingestion.Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets a custom HTTP client.
// Default is an http.Client with a 30s timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			return ErrHTTPClientRequired
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		c.baseURL = baseURL
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a Notion client for the given integration token and
// database.
func NewClient(token, databaseID string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}
	if databaseID == "" {
		return nil, ErrDatabaseRequired
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		databaseID: databaseID,
		logger:     slog.Default().With("component", "notion"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ListUnindexedPages queries the database and returns the pages whose
// Indexed checkbox is unset, with their paragraph text loaded.
func (c *Client) ListUnindexedPages(ctx context.Context) ([]*core.SourcePage, error) {
	pages, err := c.queryDatabase(ctx)
	if err != nil {
		return nil, err
	}

	var result []*core.SourcePage
	for _, page := range pages {
		if page.Properties.Indexed.Checkbox {
			continue
		}

		content, err := c.pageText(ctx, page.ID)
		if err != nil {
			return nil, fmt.Errorf("loading page %s: %w", page.ID, err)
		}

		result = append(result, &core.SourcePage{
			PageID:  page.ID,
			Title:   page.Properties.Name.PlainTitle(),
			Course:  page.Properties.Course.Select.Name,
			Content: content,
		})
	}

	c.logger.Info("listed unindexed pages", "total", len(pages), "unindexed", len(result))
	return result, nil
}

// MarkIndexed sets the Indexed checkbox on a page.
func (c *Client) MarkIndexed(ctx context.Context, pageID string) error {
	body := map[string]any{
		"properties": map[string]any{
			"Indexed": map[string]any{"checkbox": true},
		},
	}

	var ignored json.RawMessage
	return c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, body, &ignored)
}

// queryDatabase lists all pages of the database.
func (c *Client) queryDatabase(ctx context.Context) ([]pageObject, error) {
	var response struct {
		Results []pageObject `json:"results"`
	}
	path := fmt.Sprintf("/v1/databases/%s/query", c.databaseID)
	if err := c.do(ctx, http.MethodPost, path, map[string]any{}, &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// pageText fetches all child blocks of a page, following pagination, and
// joins the plain text of paragraph blocks with newlines.
func (c *Client) pageText(ctx context.Context, pageID string) (string, error) {
	var blocks []blockObject
	cursor := ""

	for {
		path := "/v1/blocks/" + pageID + "/children"
		if cursor != "" {
			path += "?start_cursor=" + url.QueryEscape(cursor)
		}

		var response blockListResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &response); err != nil {
			return "", err
		}

		blocks = append(blocks, response.Results...)
		if !response.HasMore {
			break
		}
		cursor = response.NextCursor
	}

	return extractText(blocks), nil
}

// do sends one API request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: %s %s: status %d: %s",
			ErrRequestFailed, method, path, resp.StatusCode, detail)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
