package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/conversa-hq/assistants-client/internal/manifest"
	"github.com/conversa-hq/assistants-client/pkg/assistants"
)

// AssistantAPI is the slice of the client facade the applier needs.
type AssistantAPI interface {
	ListAssistants(ctx context.Context, query map[string]string) ([]assistants.Assistant, error)
	CreateAssistant(ctx context.Context, params assistants.AssistantCreateParams) (*assistants.Assistant, error)
	UpdateAssistant(ctx context.Context, id string, updates assistants.AssistantUpdateParams) (*assistants.Assistant, error)
}

// Applier reconciles a manifest against the remote service: entries whose name
// is absent remotely are created, existing ones receive a partial update.
// Nothing is persisted locally; the remote listing is fetched fresh per Apply.
type Applier struct {
	api AssistantAPI
	log *zap.SugaredLogger
}

// Result reports what one Apply pass did, keyed by assistant name.
type Result struct {
	Created []string
	Updated []string
}

// NewApplier wires an applier on top of the client facade.
func NewApplier(api AssistantAPI, log *zap.SugaredLogger) *Applier {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Applier{api: api, log: log}
}

// Apply reconciles every manifest entry. Entries are processed in file order;
// a failing entry is recorded and the rest still run.
func (a *Applier) Apply(ctx context.Context, m *manifest.Manifest) (*Result, error) {
	if m == nil || len(m.Assistants) == 0 {
		return nil, fmt.Errorf("manifest has no assistants to apply")
	}

	// Single page only; manifests beyond one page need explicit cursor
	// handling, which this tool does not do.
	remote, err := a.api.ListAssistants(ctx, nil)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(remote))
	for _, asst := range remote {
		byName[asst.Name] = asst.ID
	}

	result := &Result{}
	var errs []error
	for _, entry := range m.Assistants {
		if id, exists := byName[entry.Name]; exists {
			if _, err := a.api.UpdateAssistant(ctx, id, entry.UpdateParams()); err != nil {
				errs = append(errs, fmt.Errorf("apply %q: %w", entry.Name, err))
				continue
			}
			a.log.Infow("assistant updated", "name", entry.Name, "assistant_id", id)
			result.Updated = append(result.Updated, entry.Name)
			continue
		}

		created, err := a.api.CreateAssistant(ctx, entry.CreateParams())
		if err != nil {
			errs = append(errs, fmt.Errorf("apply %q: %w", entry.Name, err))
			continue
		}
		a.log.Infow("assistant created", "name", entry.Name, "assistant_id", created.ID)
		result.Created = append(result.Created, entry.Name)
	}

	if len(errs) > 0 {
		return result, errors.Join(errs...)
	}
	return result, nil
}
