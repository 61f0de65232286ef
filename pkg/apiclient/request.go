package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/cmsadmin/pkg/jwtx"
	"github.com/aussiebroadwan/cmsadmin/pkg/slogx"
)

// Request describes one API call.
type Request struct {
	Method string

	// Path is relative to {baseURL}/api/v1 unless Root is set, in which case
	// it is relative to {baseURL}.
	Path string
	Root bool

	Query url.Values

	// Body is JSON encoded. RawBody, when set, is sent as-is with
	// ContentType.
	Body        any
	RawBody     []byte
	ContentType string

	Header http.Header
}

// Response is a successful (2xx) response with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the body into v. A nil v or an empty body is a no-op.
func (r *Response) Decode(v any) error {
	if v == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Do sends req. Non-2xx responses are returned as *APIError. A 401 on a
// non-auth endpoint triggers at most one refresh and one retry.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if !strings.HasPrefix(req.Path, "/") {
		req.Path = "/" + req.Path
	}

	payload, contentType, err := req.encode()
	if err != nil {
		return nil, err
	}

	token, err := c.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}

	resp, err := c.send(ctx, req, payload, contentType, token)
	if err != nil {
		return nil, err
	}
	if isSuccess(resp.StatusCode) {
		return resp, nil
	}

	apiErr := c.toAPIError(req, resp)
	if resp.StatusCode != http.StatusUnauthorized || isExcludedAuthPath(req.Path) {
		return nil, apiErr
	}

	return c.refreshAndRetry(ctx, req, payload, contentType, token, apiErr)
}

// Get sends a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.call(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

// Patch sends body as JSON and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Delete sends a DELETE and decodes any response body into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.call(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

func (c *Client) call(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (r Request) encode() ([]byte, string, error) {
	if r.RawBody != nil {
		ct := r.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		return r.RawBody, ct, nil
	}
	if r.Body == nil {
		return nil, "", nil
	}

	payload, err := json.Marshal(r.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode request body: %w", err)
	}
	return payload, "application/json", nil
}

func (c *Client) url(req Request) string {
	u := c.baseURL
	if !req.Root {
		u += APIPrefix
	}
	u += req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	return u
}

// send performs a single attempt with token as the bearer credential. The
// body is replayed from payload so the request can be retried.
func (c *Client) send(
	ctx context.Context,
	req Request,
	payload []byte,
	contentType string,
	token string,
) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.url(req), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.decorate(httpReq, req, contentType, token)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		c.observer.ObserveRequest(c.name, req.Method, 0, elapsed.Seconds())
		c.logger.Warn("api request failed",
			"api", c.name,
			"method", req.Method,
			"path", req.Path,
			"req_id", httpReq.Header.Get(slogx.RequestIDHeader),
			"error", err,
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.observer.ObserveRequest(c.name, req.Method, httpResp.StatusCode, elapsed.Seconds())
	c.logger.Debug("api request",
		"api", c.name,
		"method", req.Method,
		"path", req.Path,
		"status", httpResp.StatusCode,
		"duration_ms", elapsed.Milliseconds(),
		"req_id", httpReq.Header.Get(slogx.RequestIDHeader),
	)

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}

// decorate applies the request interceptor: bearer token, tenant and
// request id headers.
func (c *Client) decorate(httpReq *http.Request, req Request, contentType, token string) {
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(slogx.RequestIDHeader, slogx.RequestIDOrNew(httpReq.Context()))
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	tenant := c.tenantID
	if tenant == "" && token != "" {
		tenant = jwtx.OrganizationID(token)
	}
	if tenant != "" {
		httpReq.Header.Set("X-Tenant-ID", tenant)
	}

	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
}

func (c *Client) toAPIError(req Request, resp *Response) *APIError {
	return parseErrorResponse(req.Method, req.Path, resp.StatusCode, resp.Header, resp.Body)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
