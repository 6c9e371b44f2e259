package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/moviebook/internal/common"
)

// DefaultMaxBodySize caps how much of a response body is read. Larger bodies
// fail with ErrResponseTooLarge rather than being cut short.
const DefaultMaxBodySize = 32 << 20

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Caller produces token-bound Clients for one backend base URL.
type Caller struct {
	baseURL    string
	httpClient Doer
	maxBody    int64
}

// NewCaller returns a Caller for baseURL. A nil httpClient means
// http.DefaultClient.
func NewCaller(baseURL string, httpClient Doer) *Caller {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Caller{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient, maxBody: DefaultMaxBodySize}
}

// Call returns a Client that authorizes its requests with token. An empty
// token produces anonymous requests.
func (c *Caller) Call(token string) *Client {
	return &Client{baseURL: c.baseURL, token: token, httpClient: c.httpClient, maxBody: c.maxBody}
}

// Client issues requests on behalf of one session token.
type Client struct {
	baseURL    string
	token      string
	httpClient Doer
	maxBody    int64
}

// Option adjusts an outgoing request.
type Option func(*http.Request)

// WithHeader sets an extra request header.
func WithHeader(name, value string) Option {
	return func(r *http.Request) { r.Header.Set(name, value) }
}

// Post sends body as JSON to path.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...Option) (*Envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), opts)
}

// Get fetches path. The token, if any, is sent as a bearer credential.
func (c *Client) Get(ctx context.Context, path string, opts ...Option) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, opts []Option) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", common.ContentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+c.token)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("%w: %w", ErrNoResponse, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(data)) > c.maxBody {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody)}
	}

	var env Envelope
	decodeErr := json.Unmarshal(data, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		te := &TransportError{Status: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
		if decodeErr == nil {
			te.Message = env.Message
		}
		return nil, te
	}
	if decodeErr != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("%w: %w", ErrMalformedResponse, decodeErr)}
	}
	return &env, nil
}
