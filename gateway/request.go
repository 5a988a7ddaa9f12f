package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request describes one outbound call. Path is relative to the client's base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// StatusError is returned for any non-2xx response from the remote API.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(string(e.Body))
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	if msg == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), msg)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	return asStatusError(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized
}

// preparedRequest holds an encoded Request so it can be sent more than once.
type preparedRequest struct {
	method string
	path   string
	url    string
	body   []byte
	header http.Header
}

func (c *Client) prepare(req Request) (*preparedRequest, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := c.baseURL.Parse(strings.TrimPrefix(req.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("[gateway prepare] invalid path %q: %w", req.Path, err)
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, values := range req.Query {
			for _, v := range values {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	header := req.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Accept") == "" {
		header.Set("Accept", contentTypeJSON)
	}

	var body []byte
	if req.Body != nil {
		switch b := req.Body.(type) {
		case []byte:
			body = b
		case string:
			body = []byte(b)
		default:
			body, err = json.Marshal(req.Body)
			if err != nil {
				return nil, fmt.Errorf("[gateway prepare] encode body: %w", err)
			}
		}
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", contentTypeJSON)
		}
	}

	return &preparedRequest{
		method: method,
		path:   req.Path,
		url:    u.String(),
		body:   body,
		header: header,
	}, nil
}

// send issues the request once with the given access token and decodes a 2xx body into out.
func (c *Client) send(ctx context.Context, pr *preparedRequest, accessToken string, out any) error {
	var body io.Reader
	if pr.body != nil {
		body = bytes.NewReader(pr.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, pr.method, pr.url, body)
	if err != nil {
		return fmt.Errorf("[gateway send] build request: %w", err)
	}
	httpReq.Header = pr.header.Clone()
	if tok := bearer(accessToken); tok != nil {
		tok.SetAuthHeader(httpReq)
	} else {
		httpReq.Header.Del("Authorization")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("[gateway send] %s %s: %w", pr.method, pr.path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("[gateway send] read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     pr.method,
			Path:       pr.path,
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("[gateway send] decode %s %s response: %w", pr.method, pr.path, err)
	}
	return nil
}
