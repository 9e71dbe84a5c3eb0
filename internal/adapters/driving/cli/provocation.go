package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
)

var provocationCmd = &cobra.Command{
	Use:   "provocation",
	Short: "Record and list AI provocations",
	Long: `Provocations are AI-generated prompts tied to a specific section and
revision. They are recorded here after generation and invalidated
automatically when the revision is superseded.`,
}

var provocationRecordCmd = &cobra.Command{
	Use:   "record [doc-id] [section-id] [content]",
	Short: "Record a generated provocation against a section",
	Args:  cobra.ExactArgs(3),
	RunE:  runProvocationRecord,
}

var provocationListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List a document's active provocations",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvocationList,
}

// Flags for the record command.
var (
	provocationStyle     string
	provocationRequestID string
)

func init() {
	provocationRecordCmd.Flags().StringVarP(&provocationStyle, "style", "s", string(domain.StyleSocratic),
		"Provocation style: socratic, counter, or synthesis")
	provocationRecordCmd.Flags().StringVarP(&provocationRequestID, "request", "r", "",
		"Generating request id, for traceability")

	provocationCmd.AddCommand(provocationRecordCmd)
	provocationCmd.AddCommand(provocationListCmd)
	rootCmd.AddCommand(provocationCmd)
}

func runProvocationRecord(cmd *cobra.Command, args []string) error {
	if provocationService == nil {
		return errors.New("provocation service not configured")
	}

	p, err := provocationService.Record(context.Background(), driving.NewProvocation{
		DocumentID: args[0],
		SectionID:  args[1],
		RequestID:  provocationRequestID,
		Style:      domain.ProvocationStyle(provocationStyle),
		Content:    args[2],
	})
	if err != nil {
		return fmt.Errorf("failed to record provocation: %w", err)
	}

	cmd.Printf("Provocation %s recorded (%s).\n", p.ID, p.Style)
	return nil
}

func runProvocationList(cmd *cobra.Command, args []string) error {
	if provocationService == nil {
		return errors.New("provocation service not configured")
	}

	provocations, err := provocationService.ListActive(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list provocations: %w", err)
	}

	if len(provocations) == 0 {
		cmd.Println("No active provocations.")
		return nil
	}

	for _, p := range provocations {
		cmd.Printf("  %s [%s]\n", p.ID, p.Style)
		cmd.Printf("    Section: %s\n", p.SectionID)
		cmd.Printf("    %s\n", p.Content)
		cmd.Println()
	}
	cmd.Printf("Total: %d active provocations\n", len(provocations))
	return nil
}
