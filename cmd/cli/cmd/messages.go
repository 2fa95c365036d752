package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/clouddevops/devopsapp/pkg/client"
)

var messagesCmd = &cobra.Command{
	Use:     "messages",
	Aliases: []string{"msg"},
	Short:   "List and send messages",
}

var listMessagesCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(baseURL, apiKey)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		msgs, err := c.ListMessages(ctx)
		if err != nil {
			return fmt.Errorf("failed to list messages: %w", err)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, _ := json.MarshalIndent(msgs, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		if len(msgs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No messages yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIMESTAMP\tTEXT")
		for _, m := range msgs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Timestamp, m.Text)
		}
		return w.Flush()
	},
}

var sendMessageCmd = &cobra.Command{
	Use:   "send <text>",
	Short: "Send a message",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(baseURL, apiKey)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		msg, err := c.SendMessage(ctx, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Message saved: %s\n", msg.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "  Timestamp: %s\n", msg.Timestamp)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend health",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(baseURL, apiKey)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		h, err := c.Health(ctx)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", h.Status, h.Timestamp)
		return nil
	},
}

func init() {
	listMessagesCmd.Flags().Bool("json", false, "Output as JSON")

	messagesCmd.AddCommand(listMessagesCmd)
	messagesCmd.AddCommand(sendMessageCmd)
	rootCmd.AddCommand(messagesCmd)
	rootCmd.AddCommand(healthCmd)
}

