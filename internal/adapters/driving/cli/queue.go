package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Work through the note reassignment queue",
	Long: `After a reimport, notes whose section disappeared wait in the
reassignment queue until you pick a new section for them or skip them.`,
}

var queueListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List queued notes for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueueList,
}

var queueReassignCmd = &cobra.Command{
	Use:   "reassign [doc-id] [note-id] [section-id]",
	Short: "Attach a queued note to a section of the current revision",
	Args:  cobra.ExactArgs(3),
	RunE:  runQueueReassign,
}

var queueSkipCmd = &cobra.Command{
	Use:   "skip [doc-id] [note-id]",
	Short: "Leave a queued note unresolved for now",
	Args:  cobra.ExactArgs(2),
	RunE:  runQueueSkip,
}

func init() {
	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueReassignCmd)
	queueCmd.AddCommand(queueSkipCmd)
	rootCmd.AddCommand(queueCmd)
}

func runQueueList(cmd *cobra.Command, args []string) error {
	if reassignService == nil {
		return errors.New("reassignment service not configured")
	}

	queued, err := reassignService.ListOpen(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list queue: %w", err)
	}

	if len(queued) == 0 {
		cmd.Println("The queue is empty.")
		return nil
	}

	for _, q := range queued {
		cmd.Printf("  Note %s\n", q.Note.ID)
		cmd.Printf("    Used to live under: %s (%s)\n", q.Entry.OldHeading, q.Entry.OldAnchorKey)
		cmd.Printf("    %s\n", q.Note.Content)
		cmd.Println()
	}
	cmd.Printf("Total: %d queued notes\n", len(queued))
	return nil
}

func runQueueReassign(cmd *cobra.Command, args []string) error {
	if reassignService == nil {
		return errors.New("reassignment service not configured")
	}

	if err := reassignService.Reassign(context.Background(), args[0], args[1], args[2]); err != nil {
		return fmt.Errorf("failed to reassign note: %w", err)
	}

	cmd.Printf("Note %s attached to section %s.\n", args[1], args[2])
	return nil
}

func runQueueSkip(cmd *cobra.Command, args []string) error {
	if reassignService == nil {
		return errors.New("reassignment service not configured")
	}

	if err := reassignService.SkipForNow(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to skip note: %w", err)
	}

	cmd.Printf("Note %s stays queued.\n", args[1])
	return nil
}
