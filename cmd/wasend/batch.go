package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/entrhq/wasend/pkg/dataload"
	"github.com/entrhq/wasend/pkg/whatsapp"
)

var keepGoing bool

var batchCmd = &cobra.Command{
	Use:   "batch <file.csv|file.json>",
	Short: "Send every message listed in a CSV or JSON file",
	Long: `Send the messages listed in a CSV or JSON file, one after another.

CSV files need a header with the columns receiver, type, message, path and
caption. JSON files hold an array of objects with the same keys. An empty
type means text.

Sending stops at the first failure unless --keep-going is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := dataload.LoadMessages(args[0])
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to send")
			return nil
		}

		s, err := openSender(cmd)
		if err != nil {
			return err
		}
		return runBatch(s, messages, keepGoing, cmd.OutOrStdout())
	},
}

func init() {
	batchCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "continue with the next message after a failure")
}

// runBatch sends messages in order and reports each result to out.
func runBatch(s sender, messages []whatsapp.Message, keepGoing bool, out io.Writer) error {
	failed := 0
	for i, msg := range messages {
		if err := s.Send(msg); err != nil {
			failed++
			fmt.Fprintf(out, "[%d/%d] FAILED %s to %s: %v\n", i+1, len(messages), msg.Kind, msg.Receiver, err)
			if !keepGoing {
				return fmt.Errorf("message %d: %w", i+1, err)
			}
			continue
		}
		fmt.Fprintf(out, "[%d/%d] sent %s to %s\n", i+1, len(messages), msg.Kind, msg.Receiver)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d messages failed", failed, len(messages))
	}
	return nil
}
