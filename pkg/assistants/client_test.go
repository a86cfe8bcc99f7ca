package assistants

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/conversa-hq/assistants-client/pkg/httpclient"
)

// stubTransport records requests and plays back canned JSON responses.
type stubTransport struct {
	t        *testing.T
	calls    []httpclient.Request
	uploads  int
	err      error
	response string
}

func (s *stubTransport) Do(_ context.Context, req httpclient.Request, out any) error {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return s.err
	}
	if out != nil && s.response != "" {
		if err := json.Unmarshal([]byte(s.response), out); err != nil {
			s.t.Fatalf("stub response decode: %v", err)
		}
	}
	return nil
}

func (s *stubTransport) Upload(_ context.Context, req httpclient.Request, _ httpclient.FilePart, fields map[string]string, out any) error {
	s.uploads++
	s.calls = append(s.calls, req)
	if s.err != nil {
		return s.err
	}
	if out != nil && s.response != "" {
		if err := json.Unmarshal([]byte(s.response), out); err != nil {
			s.t.Fatalf("stub response decode: %v", err)
		}
	}
	return nil
}

// bodyJSON re-encodes a recorded request body so tests can inspect the exact
// keys that would go on the wire.
func bodyJSON(t *testing.T, body any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal recorded body: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode recorded body: %v", err)
	}
	return decoded
}

func TestEveryOperationSetsBetaHeader(t *testing.T) {
	stub := &stubTransport{t: t, response: `{}`}
	client := New(stub, nil)
	ctx := context.Background()

	_, _ = client.CreateAssistant(ctx, AssistantCreateParams{Name: "a", Description: "d", Model: "m"})
	_, _ = client.GetAssistant(ctx, "a_1")
	_, _ = client.UpdateAssistant(ctx, "a_1", AssistantUpdateParams{})
	_ = client.DeleteAssistant(ctx, "a_1")
	_, _ = client.ListAssistants(ctx, nil)
	_, _ = client.CreateThread(ctx, "a_1", "t", nil)
	_, _ = client.GetThread(ctx, "t_1")
	_, _ = client.AddMessage(ctx, "t_1", ThreadMessage{Role: RoleUser, Content: "hi"})
	_, _ = client.CreateRun(ctx, "t_1", "a_1", nil)

	if len(stub.calls) != 9 {
		t.Fatalf("expected 9 recorded calls, got %d", len(stub.calls))
	}
	for i, call := range stub.calls {
		if got := call.Headers["OpenAI-Beta"]; got != "assistants=v2" {
			t.Fatalf("call %d (%s %s): missing beta header, got %q", i, call.Method, call.Path, got)
		}
	}
}

func TestTransportErrorIsReturnedUnchanged(t *testing.T) {
	sentinel := errors.New("connection refused")
	stub := &stubTransport{t: t, err: sentinel}
	client := New(stub, nil)

	_, err := client.GetAssistant(context.Background(), "a_1")
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected the transport error verbatim, got %v", err)
	}

	_, err = client.CreateRun(context.Background(), "t_1", "a_1", nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected the transport error verbatim, got %v", err)
	}
}

func TestUpdateAssistantOmitsUnsetFields(t *testing.T) {
	stub := &stubTransport{t: t, response: `{"id":"a_1"}`}
	client := New(stub, nil)

	name := "X"
	if _, err := client.UpdateAssistant(context.Background(), "a_1", AssistantUpdateParams{Name: &name}); err != nil {
		t.Fatalf("UpdateAssistant: %v", err)
	}

	body := bodyJSON(t, stub.calls[0].Body)
	if !reflect.DeepEqual(body, map[string]any{"name": "X"}) {
		t.Fatalf("expected only the name field on the wire, got %v", body)
	}
	if stub.calls[0].Method != http.MethodPost {
		t.Fatalf("unexpected method %s", stub.calls[0].Method)
	}
	if stub.calls[0].Path != "/assistants/a_1" {
		t.Fatalf("unexpected path %s", stub.calls[0].Path)
	}
}

func TestListAssistantsReturnsDataInOrder(t *testing.T) {
	stub := &stubTransport{t: t, response: `{
		"object": "list",
		"data": [
			{"id": "a_2", "name": "second"},
			{"id": "a_1", "name": "first"}
		],
		"first_id": "a_2",
		"has_more": true
	}`}
	client := New(stub, nil)

	got, err := client.ListAssistants(context.Background(), map[string]string{"limit": "2", "after": "a_0"})
	if err != nil {
		t.Fatalf("ListAssistants: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a_2" || got[1].ID != "a_1" {
		t.Fatalf("data not returned in remote order: %+v", got)
	}
	if stub.calls[0].Query["limit"] != "2" || stub.calls[0].Query["after"] != "a_0" {
		t.Fatalf("query not forwarded verbatim: %v", stub.calls[0].Query)
	}
}

func TestCreateAssistantRoundTrip(t *testing.T) {
	params := AssistantCreateParams{
		Name:          "support-bot",
		Description:   "answers tickets",
		Model:         "gpt-4.1",
		Tools:         []Tool{{Type: "code_interpreter"}},
		ToolResources: ToolResources{"max_chunks": float64(20)},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/assistants":
			var got AssistantCreateParams
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("decode create body: %v", err)
			}
			if !reflect.DeepEqual(got, params) {
				t.Fatalf("create body mismatch: %+v", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(Assistant{
				ID: "a_1", Name: got.Name, Description: got.Description,
				Model: got.Model, Tools: got.Tools, ToolResources: got.ToolResources,
				CreatedAt: 1700000000, UpdatedAt: 1700000000,
			})
		case r.Method == http.MethodGet && r.URL.Path == "/assistants/a_1":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(Assistant{
				ID: "a_1", Name: params.Name, Description: params.Description,
				Model: params.Model, Tools: params.Tools, ToolResources: params.ToolResources,
				CreatedAt: 1700000000, UpdatedAt: 1700000000,
			})
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := New(httpclient.NewRestyClient(httpclient.Options{BaseURL: srv.URL}), nil)

	created, err := client.CreateAssistant(context.Background(), params)
	if err != nil {
		t.Fatalf("CreateAssistant: %v", err)
	}

	fetched, err := client.GetAssistant(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetAssistant: %v", err)
	}

	if fetched.Name != params.Name || fetched.Description != params.Description || fetched.Model != params.Model {
		t.Fatalf("fetched assistant differs from input: %+v", fetched)
	}
	if !reflect.DeepEqual(fetched.Tools, params.Tools) {
		t.Fatalf("tools differ: %+v", fetched.Tools)
	}
	if !reflect.DeepEqual(fetched.ToolResources, params.ToolResources) {
		t.Fatalf("tool resources differ: %+v", fetched.ToolResources)
	}
}

func TestRemoteRejectionSurfacesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"message":"model is required","type":"invalid_request_error","param":"model"}}`))
	}))
	defer srv.Close()

	client := New(httpclient.NewRestyClient(httpclient.Options{BaseURL: srv.URL}), nil)

	_, err := client.CreateAssistant(context.Background(), AssistantCreateParams{Name: "a"})
	if err == nil {
		t.Fatalf("expected error on 422")
	}

	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *httpclient.StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", statusErr.StatusCode)
	}

	var remote ErrorResponse
	if err := json.Unmarshal(statusErr.Body, &remote); err != nil {
		t.Fatalf("decode remote error: %v", err)
	}
	if remote.Error.Message != "model is required" || remote.Error.Param != "model" {
		t.Fatalf("remote error altered: %+v", remote.Error)
	}
}
