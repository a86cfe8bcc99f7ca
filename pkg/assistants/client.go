package assistants

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/conversa-hq/assistants-client/pkg/httpclient"
)

// betaHeader selects the assistants v2 surface of the remote API. Sent on
// every request.
const (
	betaHeaderName  = "OpenAI-Beta"
	betaHeaderValue = "assistants=v2"
)

// Client is the typed binding for the remote assistants API. Each method maps
// one local call onto one HTTP request; no state is retained between calls and
// a single Client is safe for concurrent use. Failures are logged with the
// failed action's name and returned verbatim — never wrapped, never retried.
type Client struct {
	http httpclient.Client
	log  *zap.SugaredLogger
}

// New creates a Client on top of the given transport. A nil logger disables
// diagnostics.
func New(transport httpclient.Client, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{http: transport, log: log}
}

// headers returns the per-request header set. A fresh map per call keeps
// concurrent operations from sharing mutable state.
func (c *Client) headers() map[string]string {
	return map[string]string{betaHeaderName: betaHeaderValue}
}

// CreateAssistant registers a new assistant and returns the server-assigned
// record including id and timestamps. Field validation happens remotely.
func (c *Client) CreateAssistant(ctx context.Context, params AssistantCreateParams) (*Assistant, error) {
	var out Assistant
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/assistants",
		Headers: c.headers(),
		Body:    params,
	}, &out)
	if err != nil {
		c.log.Errorw("create assistant failed", "error", err)
		return nil, err
	}
	return &out, nil
}

// GetAssistant retrieves one assistant by id.
func (c *Client) GetAssistant(ctx context.Context, id string) (*Assistant, error) {
	var out Assistant
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodGet,
		Path:    "/assistants/" + id,
		Headers: c.headers(),
	}, &out)
	if err != nil {
		c.log.Errorw("get assistant failed", "assistant_id", id, "error", err)
		return nil, err
	}
	return &out, nil
}

// UpdateAssistant applies a partial update: fields left unset in updates stay
// off the wire and are left unchanged by the remote service.
func (c *Client) UpdateAssistant(ctx context.Context, id string, updates AssistantUpdateParams) (*Assistant, error) {
	var out Assistant
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/assistants/" + id,
		Headers: c.headers(),
		Body:    updates,
	}, &out)
	if err != nil {
		c.log.Errorw("update assistant failed", "assistant_id", id, "error", err)
		return nil, err
	}
	return &out, nil
}

// DeleteAssistant removes an assistant. Whether deleting a missing id is an
// error or a no-op is the remote service's call; nothing is special-cased here.
func (c *Client) DeleteAssistant(ctx context.Context, id string) error {
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodDelete,
		Path:    "/assistants/" + id,
		Headers: c.headers(),
	}, nil)
	if err != nil {
		c.log.Errorw("delete assistant failed", "assistant_id", id, "error", err)
		return err
	}
	return nil
}

// assistantList is the remote list envelope. Only data is surfaced; callers
// needing pagination pass cursor parameters explicitly via query.
type assistantList struct {
	Data []Assistant `json:"data"`
}

// ListAssistants returns the assistants of the envelope's data array, in the
// order the remote service supplied them. The query map is forwarded verbatim.
func (c *Client) ListAssistants(ctx context.Context, query map[string]string) ([]Assistant, error) {
	var out assistantList
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodGet,
		Path:    "/assistants",
		Headers: c.headers(),
		Query:   query,
	}, &out)
	if err != nil {
		c.log.Errorw("list assistants failed", "error", err)
		return nil, err
	}
	return out.Data, nil
}
