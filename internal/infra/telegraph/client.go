// Package telegraph publishes catalog listings as telegra.ph pages.
package telegraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.telegra.ph"

// Client is a minimal Telegraph API client. The account is created
// lazily on first publish and its access token is reused afterwards.
type Client struct {
	httpClient *http.Client
	baseURL    string

	shortName  string
	authorName string
	authorURL  string

	mu          sync.Mutex
	accessToken string
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(shortName, authorName, authorURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		shortName:  shortName,
		authorName: authorName,
		authorURL:  authorURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// node is one Telegraph DOM element; children mix nested nodes and
// plain strings.
type node struct {
	Tag      string `json:"tag,omitempty"`
	Children []any  `json:"children,omitempty"`
}

type apiResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Result struct {
		AccessToken string `json:"access_token"`
		URL         string `json:"url"`
	} `json:"result"`
}

// Publish creates a page titled after the listing with one bullet per
// item plus usage instructions, and returns the page URL.
func (c *Client) Publish(ctx context.Context, title string, items []string) (string, error) {
	token, err := c.ensureAccount(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now().Format("January 2, 2006, 15:04 MST")

	list := make([]any, 0, len(items))
	for _, item := range items {
		list = append(list, node{Tag: "li", Children: []any{item}})
	}

	usage := "/subject [name] [count]"
	example := "/subject Biology 2"
	if containsChapters(title) {
		usage = "/chapter [name] [count]"
		example = "/chapter Living World 2"
	}

	content := []node{
		{Tag: "h4", Children: []any{"📚 " + title}},
		{Tag: "br"},
		{Tag: "p", Children: []any{node{Tag: "i", Children: []any{"Last updated: " + now}}}},
		{Tag: "br"},
		{Tag: "ul", Children: list},
		{Tag: "br"},
		{Tag: "p", Children: []any{"To get questions, use:"}},
		{Tag: "code", Children: []any{usage}},
		{Tag: "br"},
		{Tag: "p", Children: []any{"Example:"}},
		{Tag: "code", Children: []any{example}},
	}

	var resp apiResponse
	err = c.post(ctx, "/createPage", map[string]any{
		"access_token":   token,
		"title":          fmt.Sprintf("EduHub %s - %s", title, now),
		"author_name":    c.authorName,
		"author_url":     c.authorURL,
		"content":        content,
		"return_content": false,
	}, &resp)
	if err != nil {
		return "", err
	}
	if !resp.OK {
		return "", fmt.Errorf("create page: %s", resp.Error)
	}

	return resp.Result.URL, nil
}

// ensureAccount creates the Telegraph account on first use.
func (c *Client) ensureAccount(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" {
		return c.accessToken, nil
	}

	var resp apiResponse
	err := c.post(ctx, "/createAccount", map[string]any{
		"short_name":  c.shortName,
		"author_name": c.authorName,
		"author_url":  c.authorURL,
	}, &resp)
	if err != nil {
		return "", err
	}
	if !resp.OK {
		return "", fmt.Errorf("create account: %s", resp.Error)
	}

	c.accessToken = resp.Result.AccessToken
	return c.accessToken, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out *apiResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegraph request: %w", err)
	}
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func containsChapters(title string) bool {
	return strings.Contains(title, "Chapter")
}
