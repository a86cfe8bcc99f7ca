package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conversa-hq/assistants-client/internal/app"
	"github.com/conversa-hq/assistants-client/internal/logger"
	"github.com/conversa-hq/assistants-client/internal/manifest"
	"github.com/conversa-hq/assistants-client/pkg/assistants"
)

func runAssistantCreate(cmd *cobra.Command, _ []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	params := assistants.AssistantCreateParams{}
	params.Name, _ = cmd.Flags().GetString("name")
	params.Description, _ = cmd.Flags().GetString("description")
	params.Model, _ = cmd.Flags().GetString("model")

	toolTypes, _ := cmd.Flags().GetStringArray("tool")
	params.Tools = toolsFromTypes(toolTypes)

	if raw, _ := cmd.Flags().GetString("tool-resources"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params.ToolResources); err != nil {
			return fmt.Errorf("parse tool-resources: %w", err)
		}
	}

	created, err := client.CreateAssistant(cmd.Context(), params)
	if err != nil {
		return err
	}
	return printJSON(created)
}

func runAssistantGet(cmd *cobra.Command, args []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	asst, err := client.GetAssistant(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(asst)
}

func runAssistantUpdate(cmd *cobra.Command, args []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	// Only flags the caller actually set become part of the partial update.
	updates := assistants.AssistantUpdateParams{}
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		updates.Name = &name
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		updates.Description = &description
	}
	if cmd.Flags().Changed("model") {
		model, _ := cmd.Flags().GetString("model")
		updates.Model = &model
	}
	if cmd.Flags().Changed("tool") {
		toolTypes, _ := cmd.Flags().GetStringArray("tool")
		updates.Tools = toolsFromTypes(toolTypes)
	}
	if cmd.Flags().Changed("tool-resources") {
		raw, _ := cmd.Flags().GetString("tool-resources")
		if err := json.Unmarshal([]byte(raw), &updates.ToolResources); err != nil {
			return fmt.Errorf("parse tool-resources: %w", err)
		}
	}

	updated, err := client.UpdateAssistant(cmd.Context(), args[0], updates)
	if err != nil {
		return err
	}
	return printJSON(updated)
}

func runAssistantDelete(cmd *cobra.Command, args []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	if err := client.DeleteAssistant(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("assistant %s deleted\n", args[0])
	return nil
}

func runAssistantList(cmd *cobra.Command, _ []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	query, _ := cmd.Flags().GetStringToString("query")
	list, err := client.ListAssistants(cmd.Context(), query)
	if err != nil {
		return err
	}
	return printJSON(list)
}

func runThreadCreate(cmd *cobra.Command, _ []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	assistantID, _ := cmd.Flags().GetString("assistant")
	title, _ := cmd.Flags().GetString("title")

	raw, _ := cmd.Flags().GetStringArray("message")
	initial, err := parseSeedMessages(raw)
	if err != nil {
		return err
	}

	thread, err := client.CreateThread(cmd.Context(), assistantID, title, initial)
	if err != nil {
		return err
	}
	return printJSON(thread)
}

func runThreadGet(cmd *cobra.Command, args []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	thread, err := client.GetThread(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(thread)
}

func runMessageAdd(cmd *cobra.Command, _ []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	threadID, _ := cmd.Flags().GetString("thread")
	role, _ := cmd.Flags().GetString("role")
	content, _ := cmd.Flags().GetString("content")
	fileIDs, _ := cmd.Flags().GetStringArray("attachment")

	msg := assistants.ThreadMessage{
		Role:    assistants.ThreadMessageRole(role),
		Content: content,
	}
	for _, fileID := range fileIDs {
		msg.Attachments = append(msg.Attachments, assistants.Attachment{FileID: fileID})
	}

	added, err := client.AddMessage(cmd.Context(), threadID, msg)
	if err != nil {
		return err
	}
	return printJSON(added)
}

func runRunCreate(cmd *cobra.Command, _ []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	threadID, _ := cmd.Flags().GetString("thread")
	assistantID, _ := cmd.Flags().GetString("assistant")

	opts := &assistants.RunOptions{}
	opts.Model, _ = cmd.Flags().GetString("model")
	opts.Instructions, _ = cmd.Flags().GetString("instructions")
	if extra, _ := cmd.Flags().GetStringToString("option"); len(extra) > 0 {
		opts.Extra = make(map[string]any, len(extra))
		for k, v := range extra {
			opts.Extra[k] = v
		}
	}

	run, err := client.CreateRun(cmd.Context(), threadID, assistantID, opts)
	if err != nil {
		return err
	}
	return printJSON(run)
}

func runFileUpload(cmd *cobra.Command, args []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	purpose, _ := cmd.Flags().GetString("purpose")
	resp, err := client.UploadFile(cmd.Context(), args[0], purpose)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func runApply(cmd *cobra.Command, _ []string) error {
	client, err := newFacade()
	if err != nil {
		return err
	}
	defer logger.Close()

	path, _ := cmd.Flags().GetString("file")
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	result, err := app.NewApplier(client, logger.S).Apply(cmd.Context(), m)
	if result != nil {
		_ = printJSON(result)
	}
	return err
}

// toolsFromTypes maps bare tool type strings to Tool records, skipping blanks.
func toolsFromTypes(types []string) []assistants.Tool {
	var tools []assistants.Tool
	for _, typ := range types {
		typ = strings.TrimSpace(typ)
		if typ == "" {
			continue
		}
		tools = append(tools, assistants.Tool{Type: typ})
	}
	return tools
}

// parseSeedMessages parses repeated "role:content" flags in the given order.
func parseSeedMessages(raw []string) ([]assistants.ThreadMessage, error) {
	var msgs []assistants.ThreadMessage
	for _, entry := range raw {
		role, content, found := strings.Cut(entry, ":")
		if !found || strings.TrimSpace(role) == "" {
			return nil, fmt.Errorf("invalid message %q (expected role:content)", entry)
		}
		msgs = append(msgs, assistants.ThreadMessage{
			Role:    assistants.ThreadMessageRole(strings.TrimSpace(role)),
			Content: content,
		})
	}
	return msgs, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
