package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var reimportCmd = &cobra.Command{
	Use:   "reimport [doc-id]",
	Short: "Reconcile a document with its source file",
	Long: `Re-reads the source file and, if the content changed, commits a new
revision: notes follow their sections where the anchor survives, notes
that lost their section join the reassignment queue, and provocations
tied to the old revision are invalidated.`,
	Args: cobra.ExactArgs(1),
	RunE: runReimport,
}

func init() {
	rootCmd.AddCommand(reimportCmd)
}

func runReimport(cmd *cobra.Command, args []string) error {
	if reimportService == nil {
		return errors.New("reimport service not configured")
	}

	result, err := reimportService.Reimport(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to reimport document: %w", err)
	}

	if !result.Changed {
		cmd.Println("Source unchanged; nothing to do.")
		return nil
	}

	cmd.Printf("Committed revision %d (%d sections)\n", result.RevisionNumber, result.SectionCount)
	cmd.Printf("  Notes remapped:          %d\n", result.NotesRemapped)
	cmd.Printf("  Notes queued:            %d\n", result.NotesQueued)
	cmd.Printf("  Provocations invalidated: %d\n", result.ProvocationsInvalidated)

	if result.NotesQueued > 0 {
		cmd.Printf("\nRun 'lectern queue list %s' to reassign queued notes.\n", result.DocumentID)
	}
	return nil
}
