package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 180 * time.Second

// Item is one dataset record produced by an actor run, left raw so callers
// can decode their own shapes.
type Item = json.RawMessage

// Runner defines the actor operations consumed by the collaborators built on
// Apify.
type Runner interface {
	RunActor(ctx context.Context, actor string, input any) ([]Item, error)
}

// Client calls the Apify actor API. It runs actors synchronously and returns
// the default dataset items of the finished run.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

var _ Runner = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout. Actor runs block until
// the actor finishes, so this bounds the whole scrape, not just the dial.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates an Apify client.
func New(token, baseURL string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("apify token required")
	}
	baseURL = strings.TrimSpace(strings.TrimSuffix(baseURL, "/"))
	if baseURL == "" {
		return nil, errors.New("apify base url required")
	}
	client := &Client{
		token:      token,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// RunActor starts the named actor with the given input, waits for the run to
// finish, and returns its dataset items. The actor name uses the public
// "user/actor" form; the API path wants the slash folded to a tilde.
func (c *Client) RunActor(ctx context.Context, actor string, input any) ([]Item, error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return nil, errors.New("apify run: actor required")
	}

	encoded, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("apify run: encode input: %w", err)
	}

	endpoint := fmt.Sprintf(
		"%s/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL,
		strings.ReplaceAll(actor, "/", "~"),
		c.token,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("apify run: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apify run %s: %w", actor, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("apify run %s: read body: %w", actor, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("apify run %s: http %d: %s", actor, resp.StatusCode, summarizeBody(body))
	}

	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("apify run %s: decode dataset: %w", actor, err)
	}
	return items, nil
}

func summarizeBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	const limit = 200
	if len(trimmed) > limit {
		return trimmed[:limit] + "..."
	}
	if trimmed == "" {
		return "<empty>"
	}
	return trimmed
}
