package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Client is a thin HTTP client for the CodeConnect REST API. The session
// credential is ambient: the backend sets it as a cookie on login/register
// and the cookie jar attaches it to every subsequent request. Callers never
// pass it explicitly. No request is ever retried; the only timeout is the
// transport-level one.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a new CodeConnect API client. The baseURL should be
// the root URL of the backend (e.g., https://codeconnect.example.com).
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	return &Client{
		baseURL: u,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// do is the core HTTP method that builds the request, carries the ambient
// credential via the cookie jar, and handles JSON (de)serialization.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(
		ctx, method, c.baseURL.String()+path, bodyReader,
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, method, path, result)
}

// send executes a prepared request and decodes the response.
func (c *Client) send(
	req *http.Request,
	method string,
	path string,
	result interface{},
) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)

	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%s %s: %w", method, path, ErrConflict)

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &StatusError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       string(respBody),
		}
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf(
			"unmarshaling response from %s %s: %w", method, path, err,
		)
	}

	return nil
}

// SessionCookie serializes the cookies currently held for the backend so
// they can be persisted between runs, mirroring a browser cookie store.
func (c *Client) SessionCookie() string {
	cookies := c.httpClient.Jar.Cookies(c.baseURL)
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return strings.Join(pairs, "; ")
}

// SetSessionCookie seeds the cookie jar from a string previously returned
// by SessionCookie.
func (c *Client) SetSessionCookie(serialized string) {
	if serialized == "" {
		return
	}
	var cookies []*http.Cookie
	for _, pair := range strings.Split(serialized, "; ") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	c.httpClient.Jar.SetCookies(c.baseURL, cookies)
}
