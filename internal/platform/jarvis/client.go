// Package jarvis is the HTTP client for the remote CodeJarvis API.
package jarvis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"codejarvis/internal/common"
)

// Client has no timeout of its own; callers bound requests through ctx.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// StatusError is a non-2xx answer. It unwraps to the matching common sentinel.
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
	kind       error
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote api returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote api returned %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error { return e.kind }

func newStatusError(code int, body []byte) *StatusError {
	se := &StatusError{StatusCode: code, Body: body}
	switch code {
	case http.StatusConflict:
		se.kind = common.ErrConflict
	case http.StatusUnauthorized, http.StatusForbidden:
		se.kind = common.ErrUnauthorized
	case http.StatusNotFound:
		se.kind = common.ErrNotFound
	default:
		se.kind = common.ErrUpstream
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		se.Message = payload.Error
		if se.Message == "" {
			se.Message = payload.Message
		}
	}
	return se
}

// ServerMessage returns the remote API's own error text, if any.
func ServerMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   interface{}
}

func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encoding request for %s: %w", req.path, err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", req.path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s %s: %v: %w", req.method, req.path, err, common.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %v: %w", req.path, err, common.ErrServiceUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding %s: %v: %w", req.path, err, common.ErrMalformedResponse)
	}
	return nil
}
