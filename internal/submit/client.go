// Package submit sends the planner form to the calculation endpoint and
// tells a rendered result apart from a redirect.
package submit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

var ErrStatus = errors.New("calculation rejected")

// maxMessageRunes caps how much of a rejection body ends up in the error.
const maxMessageRunes = 200

// Kind tells how the server answered.
type Kind int

const (
	Fragment Kind = iota
	Redirect
)

func (k Kind) String() string {
	if k == Redirect {
		return "redirect"
	}
	return "fragment"
}

// Result is the server's answer to one submission.
type Result struct {
	Kind     Kind
	Location string // final URL after redirects
	HTML     string // body, only for Fragment
}

// Client posts forms to one endpoint. It does not retry and sets no
// timeout of its own.
type Client struct {
	endpoint *url.URL
	http     *http.Client
	log      zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for an absolute http(s) endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q must be an absolute http(s) URL", endpoint)
	}
	c := &Client{
		endpoint: u,
		http:     &http.Client{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the URL forms are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Submit posts form once. A reply that ended on another URL than the
// endpoint is a Redirect; anything else is an HTML Fragment.
func (c *Client) Submit(ctx context.Context, form url.Values) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")

	c.log.Debug().Str("endpoint", c.endpoint.String()).Int("fields", len(form)).Msg("submitting plan")
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if r := []rune(msg); len(r) > maxMessageRunes {
			msg = string(r[:maxMessageRunes])
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return Result{}, fmt.Errorf("%w: %d: %s", ErrStatus, resp.StatusCode, msg)
	}

	final := c.endpoint.String()
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	if final != c.endpoint.String() {
		c.log.Info().Str("location", final).Msg("server redirected")
		return Result{Kind: Redirect, Location: final}, nil
	}
	return Result{Kind: Fragment, Location: final, HTML: string(body)}, nil
}
