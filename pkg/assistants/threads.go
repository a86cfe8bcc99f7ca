package assistants

import (
	"context"
	"net/http"

	"github.com/conversa-hq/assistants-client/pkg/httpclient"
)

// threadCreateRequest seeds a new thread. Messages are omitted from the wire
// when empty so the remote service applies its own default.
type threadCreateRequest struct {
	AssistantID string          `json:"assistant_id"`
	Title       string          `json:"title"`
	Messages    []ThreadMessage `json:"messages,omitempty"`
}

// CreateThread opens a new thread bound to an assistant. Initial messages, if
// given, seed the thread's sequence in the given order.
func (c *Client) CreateThread(ctx context.Context, assistantID, title string, initial []ThreadMessage) (*Thread, error) {
	var out Thread
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/threads",
		Headers: c.headers(),
		Body: threadCreateRequest{
			AssistantID: assistantID,
			Title:       title,
			Messages:    initial,
		},
	}, &out)
	if err != nil {
		c.log.Errorw("create thread failed", "assistant_id", assistantID, "error", err)
		return nil, err
	}
	return &out, nil
}

// GetThread retrieves a thread including its full message sequence.
func (c *Client) GetThread(ctx context.Context, id string) (*Thread, error) {
	var out Thread
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodGet,
		Path:    "/threads/" + id,
		Headers: c.headers(),
	}, &out)
	if err != nil {
		c.log.Errorw("get thread failed", "thread_id", id, "error", err)
		return nil, err
	}
	return &out, nil
}

// AddMessage appends one message to a thread. Placement relative to prior
// messages is server-determined, typically append-at-end.
func (c *Client) AddMessage(ctx context.Context, threadID string, msg ThreadMessage) (*ThreadMessage, error) {
	var out ThreadMessage
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/threads/" + threadID + "/messages",
		Headers: c.headers(),
		Body:    msg,
	}, &out)
	if err != nil {
		c.log.Errorw("add message failed", "thread_id", threadID, "error", err)
		return nil, err
	}
	return &out, nil
}
