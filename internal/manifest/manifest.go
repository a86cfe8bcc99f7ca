package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conversa-hq/assistants-client/pkg/assistants"
)

// Package manifest loads declarative assistant definitions (YAML/JSON) that
// the apply command reconciles against the remote service.

// Entry is one assistant definition in a manifest. Names are the reconciliation
// key, so they must be unique within a file.
type Entry struct {
	Name          string                   `json:"name" yaml:"name"`
	Description   string                   `json:"description" yaml:"description"`
	Model         string                   `json:"model" yaml:"model"`
	Tools         []assistants.Tool        `json:"tools" yaml:"tools"`
	ToolResources assistants.ToolResources `json:"tool_resources" yaml:"tool_resources"`
}

// Manifest is a parsed, validated manifest file.
type Manifest struct {
	Assistants []Entry `json:"assistants" yaml:"assistants"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("manifest file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest file: %w", err)
	}

	m, err := parse(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	if len(m.Assistants) == 0 {
		return nil, errors.New("manifest contains no assistants entries")
	}

	seen := make(map[string]struct{}, len(m.Assistants))
	for i := range m.Assistants {
		e := sanitizeEntry(m.Assistants[i])
		if err := validateEntry(e); err != nil {
			return nil, fmt.Errorf("assistant[%d]: %w", i, err)
		}
		if _, exists := seen[e.Name]; exists {
			return nil, fmt.Errorf("duplicate assistant name %q", e.Name)
		}
		m.Assistants[i] = e
		seen[e.Name] = struct{}{}
	}

	return &m, nil
}

func parse(data []byte, ext string) (Manifest, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var m Manifest
		if err := d.fn(data, &m); err == nil {
			return m, nil
		}
	}

	return Manifest{}, errors.New("manifest format not recognized (expected YAML or JSON)")
}

func sanitizeEntry(e Entry) Entry {
	e.Name = strings.TrimSpace(e.Name)
	e.Description = strings.TrimSpace(e.Description)
	e.Model = strings.TrimSpace(e.Model)
	return e
}

func validateEntry(e Entry) error {
	if e.Name == "" {
		return errors.New("name is required")
	}
	if e.Description == "" {
		return fmt.Errorf("description is required for assistant %q", e.Name)
	}
	if e.Model == "" {
		return fmt.Errorf("model is required for assistant %q", e.Name)
	}
	return nil
}

// CreateParams converts a manifest entry into the facade's creation input.
func (e Entry) CreateParams() assistants.AssistantCreateParams {
	return assistants.AssistantCreateParams{
		Name:          e.Name,
		Description:   e.Description,
		Model:         e.Model,
		Tools:         e.Tools,
		ToolResources: e.ToolResources,
	}
}

// UpdateParams converts a manifest entry into a full-field partial update used
// when the assistant already exists remotely.
func (e Entry) UpdateParams() assistants.AssistantUpdateParams {
	description := e.Description
	model := e.Model
	return assistants.AssistantUpdateParams{
		Description:   &description,
		Model:         &model,
		Tools:         e.Tools,
		ToolResources: e.ToolResources,
	}
}
