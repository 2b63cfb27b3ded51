// Package fetcher fetches site resources (card collections and article
// fragments) relative to the site base, over HTTP or from a local content
// directory.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// ErrStatus is matched by errors for non-2xx responses.
var ErrStatus = errors.New("unexpected response status")

// StatusError reports a non-success response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: status %d", e.URL, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Result contains a fetched body.
type Result struct {
	Body []byte
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent string

	// TimeoutSeconds bounds each request. Zero leaves only the
	// transport's own limits.
	TimeoutSeconds int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "mainframe/1.0 (Terminal Site)",
		TimeoutSeconds: 30,
	}
}

// Client fetches resources relative to a site base.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
}

// New creates a client for the given site base. base may be an http(s)
// URL, a file:// URL or a path to a local content directory.
func New(base string, o Options) (*Client, error) {
	u, err := parseBase(base)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	if o.UserAgent == "" {
		o.UserAgent = DefaultOptions().UserAgent
	}
	return &Client{
		base: u,
		http: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(o.TimeoutSeconds) * time.Second,
		},
		userAgent: o.UserAgent,
	}, nil
}

func parseBase(base string) (*url.URL, error) {
	if base == "" {
		return nil, errors.New("empty site base")
	}

	if !strings.Contains(base, "://") {
		abs, err := filepath.Abs(base)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", base, err)
		}
		base = "file://" + filepath.ToSlash(abs)
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing site base: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "file":
	default:
		return nil, fmt.Errorf("unsupported site scheme %q", u.Scheme)
	}
	// Relative references resolve against the base as a directory.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// Base returns the site base URL.
func (c *Client) Base() string {
	return c.base.String()
}

// Resolve resolves ref against the site base.
func (c *Client) Resolve(ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", ref, err)
	}
	return c.base.ResolveReference(r).String(), nil
}

// Fetch retrieves ref (resolved against the site base). Non-2xx
// responses are returned as *StatusError.
func (c *Client) Fetch(ctx context.Context, ref string) (*Result, error) {
	target, err := c.Resolve(ref)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: target, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &Result{Body: body}, nil
}

// FetchJSON fetches ref and decodes the body into v.
func (c *Client) FetchJSON(ctx context.Context, ref string, v any) error {
	res, err := c.Fetch(ctx, ref)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(res.Body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", ref, err)
	}
	return nil
}

// Text fetches ref and returns the body as a string.
func (c *Client) Text(ctx context.Context, ref string) (string, error) {
	res, err := c.Fetch(ctx, ref)
	if err != nil {
		return "", err
	}
	return string(res.Body), nil
}
