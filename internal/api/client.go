// Package api is the thin REST wrapper over the schedule backend. Every
// call takes a context and a bearer token; non-2xx responses are decoded
// into the apperr taxonomy using the backend's {detail} convention.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shiftdesk/shiftdesk/internal/apperr"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorBody is the backend's error shape: detail is either a string or a
// list of objects carrying msg.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type detailItem struct {
	Msg string `json:"msg"`
}

// decodeError maps a non-2xx response to the error taxonomy. Any 401 means
// the session expired (or, on login, bad credentials — the caller rewrites
// the message).
func decodeError(res *http.Response) error {
	if res.StatusCode == http.StatusUnauthorized {
		return apperr.Auth("session expired")
	}

	message := fmt.Sprintf("request failed with status %d", res.StatusCode)
	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<16))
	if err == nil {
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && len(eb.Detail) > 0 {
			var s string
			if json.Unmarshal(eb.Detail, &s) == nil {
				message = s
			} else {
				var items []detailItem
				if json.Unmarshal(eb.Detail, &items) == nil {
					var msgs []string
					for _, it := range items {
						if it.Msg != "" {
							msgs = append(msgs, it.Msg)
						}
					}
					if len(msgs) > 0 {
						message = strings.Join(msgs, "; ")
					}
				}
			}
		}
	}
	return apperr.Network(res.StatusCode, message)
}

// do performs one JSON round-trip. A nil token issues an unauthenticated
// request (login only). Context cancellation surfaces as a Cancelled error,
// never as a network failure.
func (c *Client) do(req *http.Request, token string, out any) error {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return apperr.Wrap(err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return decodeError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return apperr.Wrap(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
