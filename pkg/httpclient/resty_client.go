package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options configures a RestyClient. BaseURL and APIKey are fixed once at
// construction; every request is resolved against them.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// RestyClient adapts resty.Client to the httpclient.Client interface. It holds
// no per-request state and is safe for concurrent use.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a RestyClient bound to the given base URL and auth token.
func NewRestyClient(opts Options) *RestyClient {
	c := resty.New()
	c.SetBaseURL(opts.BaseURL)
	if opts.APIKey != "" {
		c.SetAuthToken(opts.APIKey)
	}
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	return &RestyClient{client: c}
}

// Do performs the described request and decodes the JSON response into out.
func (r *RestyClient) Do(ctx context.Context, req Request, out any) error {
	rr := r.newRequest(ctx, req)
	if req.Body != nil {
		rr.SetHeader("Content-Type", "application/json")
		rr.SetBody(req.Body)
	}

	resp, err := rr.Execute(req.Method, req.Path)
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

// Upload sends multipart/form-data with a single file part plus form fields.
func (r *RestyClient) Upload(ctx context.Context, req Request, file FilePart, fields map[string]string, out any) error {
	rr := r.newRequest(ctx, req)
	rr.SetFileReader(file.FieldName, file.FileName, file.Reader)
	if len(fields) > 0 {
		rr.SetFormData(fields)
	}

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	resp, err := rr.Execute(method, req.Path)
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

// newRequest applies the shared parts of the request descriptor.
func (r *RestyClient) newRequest(ctx context.Context, req Request) *resty.Request {
	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if len(req.Query) > 0 {
		rr.SetQueryParams(req.Query)
	}
	return rr
}

// decodeResponse maps a completed response to the caller's typed result.
func decodeResponse(resp *resty.Response, out any) error {
	if resp.IsError() {
		body := make([]byte, len(resp.Body()))
		copy(body, resp.Body())
		return &StatusError{StatusCode: resp.StatusCode(), Body: body}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
