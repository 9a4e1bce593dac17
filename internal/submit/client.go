package submit

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/abhisek/checkform/internal/form"
)

// Client sends finished answers to the remote endpoint.
//
// A nil error means the remote party understood the request; the Result
// tells whether it accepted the data. Any failure to obtain a Result is
// returned as *ErrTransport, *ErrStatus or *ErrInvalidResponse.
type Client interface {
	// Submit posts the full answer record.
	Submit(ctx context.Context, r form.AnswerRecord) (*Result, error)

	// CheckName posts a lone name.
	CheckName(ctx context.Context, name string) (*Result, error)
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithDial replaces the dialer, e.g. with an in-memory listener in tests.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(c *HTTPClient) { c.http.Dial = dial }
}

// HTTPClient is a Client backed by fasthttp.
type HTTPClient struct {
	cfg  Config
	http *fasthttp.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient for cfg.
func NewHTTPClient(cfg Config, opts ...Option) (*HTTPClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("submit config: %w", err)
	}
	c := &HTTPClient{
		cfg: cfg,
		http: &fasthttp.Client{
			Name:         "checkform",
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) Submit(ctx context.Context, r form.AnswerRecord) (*Result, error) {
	body, err := encodeRecord(r)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return c.post(ctx, c.cfg.FormPath, body)
}

func (c *HTTPClient) CheckName(ctx context.Context, name string) (*Result, error) {
	body, err := json.Marshal(namePayload{Name: name})
	if err != nil {
		return nil, fmt.Errorf("encode name: %w", err)
	}
	return c.post(ctx, c.cfg.NamePath, body)
}

// post sends body as JSON and decodes the reply. fasthttp has no context
// support, so the context only contributes its deadline; a dispatched
// request cannot be aborted.
func (c *HTTPClient) post(ctx context.Context, path string, body []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ErrTransport{Err: err}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.cfg.url(path))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBody(body)

	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, &ErrTransport{Err: err}
	}

	// resp is released on return; keep our own copy of the body.
	respBody := append([]byte(nil), resp.Body()...)

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, &ErrStatus{Code: code, Body: respBody}
	}

	return decodeResult(respBody)
}
