package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conversa-hq/assistants-client/internal/config"
	"github.com/conversa-hq/assistants-client/internal/logger"
	"github.com/conversa-hq/assistants-client/pkg/assistants"
	"github.com/conversa-hq/assistants-client/pkg/httpclient"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "assistantctl",
		Short: "Operator CLI for the remote assistants API",
		Long: `assistantctl manages assistants, conversation threads, messages, runs, and
file uploads against an OpenAI-compatible assistants API. Credentials and the
base URL come from the environment (API_KEY, BASE_URL) or configs/.env.`,
		SilenceUsage: true,
	}

	assistantCmd := &cobra.Command{
		Use:   "assistant",
		Short: "Manage assistants",
	}

	assistantCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an assistant",
		RunE:  runAssistantCreate,
	}
	assistantCreateCmd.Flags().String("name", "", "assistant name")
	assistantCreateCmd.Flags().String("description", "", "assistant description")
	assistantCreateCmd.Flags().String("model", "", "model the assistant is bound to")
	assistantCreateCmd.Flags().StringArray("tool", nil, "tool type to attach (repeatable)")
	assistantCreateCmd.Flags().String("tool-resources", "", "tool resources as a JSON object")

	assistantGetCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Retrieve an assistant by id",
		Args:  cobra.ExactArgs(1),
		RunE:  runAssistantGet,
	}

	assistantUpdateCmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Partially update an assistant (only the flags you set are sent)",
		Args:  cobra.ExactArgs(1),
		RunE:  runAssistantUpdate,
	}
	assistantUpdateCmd.Flags().String("name", "", "new assistant name")
	assistantUpdateCmd.Flags().String("description", "", "new assistant description")
	assistantUpdateCmd.Flags().String("model", "", "new model")
	assistantUpdateCmd.Flags().StringArray("tool", nil, "replacement tool type (repeatable)")
	assistantUpdateCmd.Flags().String("tool-resources", "", "replacement tool resources as a JSON object")

	assistantDeleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an assistant",
		Args:  cobra.ExactArgs(1),
		RunE:  runAssistantDelete,
	}

	assistantListCmd := &cobra.Command{
		Use:   "list",
		Short: "List assistants (single page; pass cursor params via --query)",
		RunE:  runAssistantList,
	}
	assistantListCmd.Flags().StringToString("query", nil, "filter parameters forwarded verbatim (key=value)")

	assistantCmd.AddCommand(assistantCreateCmd, assistantGetCmd, assistantUpdateCmd, assistantDeleteCmd, assistantListCmd)

	threadCmd := &cobra.Command{
		Use:   "thread",
		Short: "Manage conversation threads",
	}

	threadCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a thread bound to an assistant",
		RunE:  runThreadCreate,
	}
	threadCreateCmd.Flags().String("assistant", "", "assistant id")
	threadCreateCmd.Flags().String("title", "", "thread title")
	threadCreateCmd.Flags().StringArray("message", nil, "seed message as role:content (repeatable, order kept)")

	threadGetCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Retrieve a thread with its messages",
		Args:  cobra.ExactArgs(1),
		RunE:  runThreadGet,
	}

	threadCmd.AddCommand(threadCreateCmd, threadGetCmd)

	messageAddCmd := &cobra.Command{
		Use:   "add",
		Short: "Append a message to a thread",
		RunE:  runMessageAdd,
	}
	messageAddCmd.Flags().String("thread", "", "thread id")
	messageAddCmd.Flags().String("role", "user", "message role (user|assistant|system)")
	messageAddCmd.Flags().String("content", "", "message content")
	messageAddCmd.Flags().StringArray("attachment", nil, "attached file id (repeatable, order kept)")

	messageCmd := &cobra.Command{
		Use:   "message",
		Short: "Manage thread messages",
	}
	messageCmd.AddCommand(messageAddCmd)

	runCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Request an execution run of an assistant against a thread",
		RunE:  runRunCreate,
	}
	runCreateCmd.Flags().String("thread", "", "thread id")
	runCreateCmd.Flags().String("assistant", "", "assistant id")
	runCreateCmd.Flags().String("model", "", "model override")
	runCreateCmd.Flags().String("instructions", "", "instructions override")
	runCreateCmd.Flags().StringToString("option", nil, "extra named run options (key=value)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Manage execution runs",
	}
	runCmd.AddCommand(runCreateCmd)

	fileUploadCmd := &cobra.Command{
		Use:   "upload [path]",
		Short: "Upload a local file",
		Args:  cobra.ExactArgs(1),
		RunE:  runFileUpload,
	}
	fileUploadCmd.Flags().String("purpose", "assistants", "upload purpose")

	fileCmd := &cobra.Command{
		Use:   "file",
		Short: "Manage uploaded files",
	}
	fileCmd.AddCommand(fileUploadCmd)

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile a YAML manifest of assistants against the remote service",
		RunE:  runApply,
	}
	applyCmd.Flags().StringP("file", "f", "", "manifest file path")
	_ = applyCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(assistantCmd, threadCmd, messageCmd, runCmd, fileCmd, applyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "assistantctl: %v\n", err)
		os.Exit(1)
	}
}

// newFacade bootstraps config, logging, and the transport, returning a ready
// client facade. Called per invoked sub-command so `--help` works without
// credentials.
func newFacade() (*assistants.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	transport := httpclient.NewRestyClient(httpclient.Options{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.RequestTimeout,
	})

	return assistants.New(transport, log), nil
}
