package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client is one named HTTP client from a Pool. It carries its own
// request timeout while sharing the pool's transport with its siblings.
type Client struct {
	config     Config
	baseURL    *url.URL
	httpClient *http.Client
}

// Name returns the name the client was registered under.
func (c *Client) Name() string {
	return c.config.Name
}

// Config returns a copy of the registered configuration.
func (c *Client) Config() Config {
	return c.config
}

// NewRequest builds a request for the given path resolved against the
// client's base URL. Path may carry a query string, e.g. "/?name=kim".
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse request path %q: %w", path, err)
	}

	target := c.baseURL.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request for client %q: %w", c.config.Name, err)
	}
	return req, nil
}

// Do sends the request through the shared transport, honoring the
// client's configured timeout.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
