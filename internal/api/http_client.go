package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// TokenSource returns the bearer token to attach to outgoing requests.
// An empty token means the request is sent without Authorization.
type TokenSource func(ctx context.Context) (string, error)

// HTTPClient talks to the mock API server over HTTP.
type HTTPClient struct {
	rc     *resty.Client
	tokens TokenSource
}

// NewHTTPClient builds a client for baseURL. A zero timeout means requests
// wait for the server indefinitely.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}

	c := &HTTPClient{rc: rc}
	rc.OnBeforeRequest(c.authorize)
	return c
}

// SetTokenSource installs the token lookup used for every request.
func (c *HTTPClient) SetTokenSource(src TokenSource) {
	c.tokens = src
}

func (c *HTTPClient) authorize(_ *resty.Client, req *resty.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens(req.Context())
	if err != nil {
		return fmt.Errorf("api: token source: %w", err)
	}
	if token != "" {
		req.SetAuthToken(token)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var (
		out    LoginResponse
		errRes ErrorResponse
	)

	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&errRes).
		Post(LoginPath)
	if err != nil {
		return nil, fmt.Errorf("api: login: %w", err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if resp.IsError() {
		return nil, &StatusError{Status: resp.StatusCode(), Message: errRes.Error}
	}

	return &out, nil
}

func (c *HTTPClient) ListItems(ctx context.Context) ([]Item, error) {
	var (
		out    []Item
		errRes ErrorResponse
	)

	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&errRes).
		Get(ItemsPath)
	if err != nil {
		return nil, fmt.Errorf("api: list items: %w", err)
	}

	if resp.IsError() {
		return nil, &StatusError{Status: resp.StatusCode(), Message: errRes.Error}
	}

	return out, nil
}
