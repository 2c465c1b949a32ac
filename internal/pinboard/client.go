// Package pinboard is a minimal client for the Pinboard v1 API.
package pinboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://api.pinboard.in/v1"

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// UserAgent defaults to DefaultUserAgent.
	UserAgent string
}

// DefaultUserAgent identifies requests when Options.UserAgent is empty.
const DefaultUserAgent = "pinsearch"

// Client talks to the posts/* endpoints. Every request carries the auth token and
// asks for JSON.
type Client struct {
	baseURL string
	token   string
	agent   string
	http    *http.Client
}

// New returns a Client for opts.
func New(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	agent := opts.UserAgent
	if agent == "" {
		agent = DefaultUserAgent
	}
	return &Client{
		baseURL: base,
		token:   opts.Token,
		agent:   agent,
		http:    &http.Client{Timeout: opts.Timeout},
	}
}

// All fetches every bookmark of the account.
func (c *Client) All(ctx context.Context) ([]Post, error) {
	body, err := c.get(ctx, "posts/all", nil)
	if err != nil {
		return nil, err
	}
	var posts []Post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, &RemoteError{Endpoint: "posts/all", StatusCode: http.StatusOK, Err: fmt.Errorf("cannot decode response: %w", err)}
	}
	if posts == nil {
		posts = []Post{}
	}
	return posts, nil
}

// MarkRead re-adds p with toread=no. The remaining fields are resent so the remote
// record keeps its note and tags.
func (c *Client) MarkRead(ctx context.Context, p Post) error {
	q := url.Values{}
	q.Set("url", p.Href)
	q.Set("description", p.Description)
	q.Set("extended", p.Extended)
	q.Set("tags", p.Tags)
	if p.Shared != "" {
		q.Set("shared", p.Shared)
	}
	q.Set("toread", "no")
	_, err := c.get(ctx, "posts/add", q)
	return err
}

// Delete removes the bookmark for href.
func (c *Client) Delete(ctx context.Context, href string) error {
	q := url.Values{}
	q.Set("url", href)
	_, err := c.get(ctx, "posts/delete", q)
	return err
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	if c.token == "" {
		return nil, ErrUnauthorized
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("auth_token", c.token)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("User-Agent", c.agent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("pinboard %s: %w", endpoint, ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 8192))
		return nil, &RemoteError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	return body, nil
}
