// Package gateway is the authenticated client for the remote quoting API.
//
// Every call carries the session's bearer token. When the API answers 401 the
// client exchanges the session's refresh token for a new access token and
// re-issues the failed request, at most once per Client. A Client is meant to
// live for one inbound request and is not safe for concurrent use.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON = "application/json"

	// DefaultRefreshPath is the API endpoint that exchanges a refresh token.
	DefaultRefreshPath = "auth/refresh"
)

type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	refreshPath string

	session     *Session
	accessToken string
	refreshed   bool
}

type Option func(*Client)

// WithHTTPClient sets the transport. Its Timeout is the only timeout applied.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithRefreshPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.refreshPath = path
		}
	}
}

// New binds a client to baseURL and the (possibly nil) session.
func New(baseURL string, session *Session, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("[gateway New] invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[gateway New] base URL %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		baseURL:     u,
		httpClient:  http.DefaultClient,
		refreshPath: DefaultRefreshPath,
		session:     session,
		accessToken: session.accessToken(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Refreshed reports whether this client has used up its refresh.
func (c *Client) Refreshed() bool {
	return c.refreshed
}

// AccessToken is the bearer token the next call will send. It differs from the
// session's token once a refresh has succeeded.
func (c *Client) AccessToken() string {
	return c.accessToken
}

// Do sends req and decodes a successful JSON response into out (which may be nil).
//
// A 401 triggers the single refresh-and-retry; the errors it can produce are
// *Error values. Every other failure is returned as-is.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	pr, err := c.prepare(req)
	if err != nil {
		return err
	}
	return c.handle(ctx, pr, out, c.send(ctx, pr, c.accessToken, out))
}

func (c *Client) handle(ctx context.Context, pr *preparedRequest, out any, err error) error {
	if err == nil || !IsUnauthorized(err) {
		return err
	}

	if c.refreshed {
		return &Error{Kind: InvalidRefreshToken, Err: err}
	}
	refreshToken := c.session.refreshToken()
	if refreshToken == "" {
		return &Error{Kind: InvalidRefreshToken, Err: err}
	}

	c.refreshed = true
	log.Debug().Str("method", pr.method).Str("path", pr.path).Msg("access token rejected, refreshing")

	tok, refreshErr := c.refresh(ctx, refreshToken)
	if refreshErr != nil {
		log.Debug().Err(refreshErr).Msg("token refresh failed")
		return &Error{Kind: UnexpectedError, Err: refreshErr}
	}
	c.accessToken = tok.AccessToken

	// The retry's outcome is final: a second 401 meets the set flag above.
	return c.handle(ctx, pr, out, c.send(ctx, pr, c.accessToken, out))
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}
