package assistants

import "encoding/json"

// Package assistants contains the typed data model and client binding for the
// remote assistants API. All ids are opaque strings assigned by the remote
// service; nothing here is generated or validated locally.

// Tool is an open-ended capability descriptor attachable to an assistant or a
// message attachment.
type Tool struct {
	Type string `json:"type"`
}

// ToolResources is a bag of configuration backing a tool's operation, keyed by
// resource name. Values are strings, numbers, or booleans.
type ToolResources map[string]any

// Assistant is a named, model-bound configuration managed remotely.
type Assistant struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Model         string        `json:"model"`
	Tools         []Tool        `json:"tools,omitempty"`
	ToolResources ToolResources `json:"tool_resources,omitempty"`
	CreatedAt     int64         `json:"created_at"`
	UpdatedAt     int64         `json:"updated_at"`
}

// AssistantCreateParams is the input for assistant creation. Name, description,
// and model are required by the remote service; tools and tool resources are
// optional and omitted from the request when absent.
type AssistantCreateParams struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Model         string        `json:"model"`
	Tools         []Tool        `json:"tools,omitempty"`
	ToolResources ToolResources `json:"tool_resources,omitempty"`
}

// AssistantUpdateParams carries a partial update: only set fields are sent,
// everything else is left unchanged by the remote service. Unset fields must
// stay off the wire entirely so the remote side does not reset them.
type AssistantUpdateParams struct {
	Name          *string       `json:"name,omitempty"`
	Description   *string       `json:"description,omitempty"`
	Model         *string       `json:"model,omitempty"`
	Tools         []Tool        `json:"tools,omitempty"`
	ToolResources ToolResources `json:"tool_resources,omitempty"`
}

// ThreadMessageRole is the closed set of message author roles.
type ThreadMessageRole string

const (
	RoleUser      ThreadMessageRole = "user"
	RoleAssistant ThreadMessageRole = "assistant"
	RoleSystem    ThreadMessageRole = "system"
)

// Attachment references an uploaded file within a message, optionally scoped
// to specific tools. Order is preserved.
type Attachment struct {
	FileID string `json:"file_id"`
	Tools  []Tool `json:"tools,omitempty"`
}

// ThreadMessage is a single message in a thread's ordered sequence.
type ThreadMessage struct {
	Role        ThreadMessageRole `json:"role"`
	Content     string            `json:"content"`
	Attachments []Attachment      `json:"attachments,omitempty"`
}

// Thread is an ordered conversation session associated with one assistant.
type Thread struct {
	ID          string          `json:"id"`
	AssistantID string          `json:"assistant_id"`
	Title       string          `json:"title"`
	Messages    []ThreadMessage `json:"messages"`
	CreatedAt   int64           `json:"created_at"`
}

// ThreadRun represents one requested execution of an assistant against a
// thread. It is the creation acknowledgement, not the run's result.
type ThreadRun struct {
	ID           string `json:"id"`
	ThreadID     string `json:"thread_id"`
	AssistantID  string `json:"assistant_id"`
	Model        string `json:"model,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Tools        []Tool `json:"tools,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

// RunOptions are optional settings merged into the run-creation body. Extra
// carries caller-supplied named options beyond the known fields; known fields
// always win over Extra keys of the same name.
type RunOptions struct {
	Model        string
	Instructions string
	Tools        []Tool
	Extra        map[string]any
}

// fileResponseKnown mirrors the fixed portion of FileResponse on the wire.
type fileResponseKnown struct {
	ID        string `json:"id"`
	Purpose   string `json:"purpose"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	CreatedAt int64  `json:"created_at"`
}

// FileResponse describes an uploaded file. The remote service may attach
// fields this client does not know about; those are kept in Extra and survive
// a marshal round trip untouched.
type FileResponse struct {
	ID        string
	Purpose   string
	Filename  string
	Size      int64
	CreatedAt int64
	Extra     map[string]any
}

func (f *FileResponse) UnmarshalJSON(data []byte) error {
	var known fileResponseKnown
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range []string{"id", "purpose", "filename", "size", "created_at"} {
		delete(raw, key)
	}

	f.ID = known.ID
	f.Purpose = known.Purpose
	f.Filename = known.Filename
	f.Size = known.Size
	f.CreatedAt = known.CreatedAt
	if len(raw) > 0 {
		f.Extra = raw
	} else {
		f.Extra = nil
	}
	return nil
}

func (f FileResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Extra)+5)
	for k, v := range f.Extra {
		out[k] = v
	}
	out["id"] = f.ID
	out["purpose"] = f.Purpose
	out["filename"] = f.Filename
	out["size"] = f.Size
	out["created_at"] = f.CreatedAt
	return json.Marshal(out)
}

// ErrorResponse is the wire shape of a failed remote call. The client never
// converts it into a typed error; it is provided so callers can decode the
// body of a transport status error when they need the detail.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the inner error record of an ErrorResponse.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}
