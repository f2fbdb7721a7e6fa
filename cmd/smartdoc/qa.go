package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"smartdoc/internal/api"
	"smartdoc/internal/convert"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about your documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past Q&A conversations",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var sessionCmd = &cobra.Command{
	Use:   "session <id>",
	Short: "Show the full transcript of a conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSession,
}

var (
	askSessionID string
	askContext   []string
)

func init() {
	askCmd.Flags().StringVar(&askSessionID, "session", "", "Continue an existing conversation")
	askCmd.Flags().StringSliceVar(&askContext, "doc", nil, "Document id to ground the answer in (repeatable)")

	rootCmd.AddCommand(askCmd, historyCmd, sessionCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.Ask(cmd.Context(), api.AskRequest{
		Question:  strings.Join(args, " "),
		Context:   askContext,
		SessionID: askSessionID,
	})
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	fmt.Println(resp.Data.Content)
	for _, src := range resp.Data.Sources {
		fmt.Printf("  [%s] %s\n", src.Title, src.Excerpt)
	}
	if resp.Data.SessionID != "" {
		fmt.Printf("session: %s\n", resp.Data.SessionID)
	}
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.History(cmd.Context())
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}
	for _, entry := range *resp.Data {
		fmt.Printf("%s  %s (updated %s, %d recent messages)\n",
			entry.SessionID, entry.Title,
			convert.FormatDateSafe(entry.UpdatedAt),
			len(entry.RecentMessages))
	}
	return nil
}

func runSession(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}
	resp := client.Session(cmd.Context(), args[0])
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	fmt.Printf("%s (created %s)\n", resp.Data.Title, convert.FormatDateSafe(resp.Data.CreatedAt))
	for _, msg := range resp.Data.Messages {
		fmt.Printf("[%s] %s\n", msg.Type, msg.Content)
	}
	return nil
}
