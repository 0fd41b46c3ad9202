package httpclient

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sort"
	"time"

	"person-api/internal/observability/exchange"
)

// Options configures a Pool.
type Options struct {
	// Transport is the base RoundTripper shared by every registered
	// client. Nil selects a pooled transport with keep-alive defaults.
	Transport http.RoundTripper

	// Sink receives a rendered entry for every request and response
	// passing through the pool's clients. Nil disables capture.
	Sink exchange.Sink

	// Logger is used for registration and capture diagnostics.
	// Nil falls back to slog.Default().
	Logger *slog.Logger
}

// Pool holds named HTTP clients sharing one transport.
//
// Register is meant for startup wiring and must not run concurrently
// with itself or Acquire. Once registration is done the pool is
// read-only and Acquire is safe for concurrent use.
type Pool struct {
	clients   map[string]*Client
	transport http.RoundTripper
	logger    *slog.Logger
}

// NewPool creates an empty pool.
func NewPool(opts Options) *Pool {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := opts.Transport
	if base == nil {
		base = newPooledTransport()
	}
	if opts.Sink != nil {
		base = &exchange.Transport{Base: base, Sink: opts.Sink, Logger: logger}
	}

	return &Pool{
		clients:   make(map[string]*Client),
		transport: base,
		logger:    logger,
	}
}

// newPooledTransport returns a transport with connection reuse tuned for
// a small set of upstream hosts. Overall deadlines stay with each
// client's Timeout; the transport only bounds connection setup.
func newPooledTransport() *http.Transport {
	return &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

// Register adds a client under cfg.Name.
//
// The configuration is validated first; an invalid one is rejected with
// an error wrapping ErrInvalidConfig and the pool is left unchanged.
// Registering a name twice fails with ErrDuplicateName and keeps the
// original registration intact.
func (p *Pool) Register(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, exists := p.clients[cfg.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, cfg.Name)
	}

	// Validate guarantees this parses
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base URL for client %q: %v", ErrInvalidConfig, cfg.Name, err)
	}

	p.clients[cfg.Name] = &Client{
		config:  cfg,
		baseURL: base,
		httpClient: &http.Client{
			Transport: p.transport,
			Timeout:   cfg.Timeout,
		},
	}

	p.logger.Info("http client registered",
		slog.String("client", cfg.Name),
		slog.String("base_url", cfg.BaseURL),
		slog.Duration("timeout", cfg.Timeout))

	return nil
}

// Acquire returns the client registered under name.
// Unknown names fail with an error wrapping ErrUnknownName.
func (p *Pool) Acquire(name string) (*Client, error) {
	client, ok := p.clients[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return client, nil
}

// Names returns the registered client names in sorted order.
func (p *Pool) Names() []string {
	names := make([]string, 0, len(p.clients))
	for name := range p.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered clients.
func (p *Pool) Len() int {
	return len(p.clients)
}
