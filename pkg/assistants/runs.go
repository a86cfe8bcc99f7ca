package assistants

import (
	"context"
	"net/http"

	"github.com/conversa-hq/assistants-client/pkg/httpclient"
)

// runBody merges the open options bag with the required assistant binding.
// Extra keys go in first so the known fields always win on collision, and only
// fields the caller actually set appear in the result.
func runBody(assistantID string, opts *RunOptions) map[string]any {
	body := map[string]any{}
	if opts != nil {
		for k, v := range opts.Extra {
			body[k] = v
		}
		if opts.Model != "" {
			body["model"] = opts.Model
		}
		if opts.Instructions != "" {
			body["instructions"] = opts.Instructions
		}
		if len(opts.Tools) > 0 {
			body["tools"] = opts.Tools
		}
	}
	body["assistant_id"] = assistantID
	return body
}

// CreateRun requests one execution of an assistant against a thread's message
// history. It only creates the run; completion is not observed here.
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID string, opts *RunOptions) (*ThreadRun, error) {
	var out ThreadRun
	err := c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/threads/" + threadID + "/runs",
		Headers: c.headers(),
		Body:    runBody(assistantID, opts),
	}, &out)
	if err != nil {
		c.log.Errorw("create run failed", "thread_id", threadID, "assistant_id", assistantID, "error", err)
		return nil, err
	}
	return &out, nil
}
