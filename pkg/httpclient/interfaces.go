package httpclient

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Request describes one remote call: method and path relative to the client's
// base URL, plus optional headers, query parameters, and a JSON body.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   map[string]string
	Body    any
}

// FilePart is the binary stream portion of a multipart upload.
type FilePart struct {
	FieldName string
	FileName  string
	Reader    io.Reader
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Do performs the request and, when out is non-nil, decodes the JSON response
// body into it. Upload sends multipart/form-data with one file part and the
// given form fields. Both return a *StatusError on non-2xx responses.
type Client interface {
	Do(ctx context.Context, req Request, out any) error
	Upload(ctx context.Context, req Request, file FilePart, fields map[string]string, out any) error
}

// StatusError reports a non-2xx response, carrying the raw body so callers can
// inspect the remote error shape themselves.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http response status %d: %s", e.StatusCode, bodySnippet(e.Body))
}

// bodySnippet trims the response body for log/error output.
func bodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
