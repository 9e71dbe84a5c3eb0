package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
	Long:  `Add, list, edit, or delete notes attached to document sections.`,
}

var noteAddCmd = &cobra.Command{
	Use:   "add [doc-id] [content]",
	Short: "Add a note to a document",
	Args:  cobra.ExactArgs(2),
	RunE:  runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:   "list [doc-id]",
	Short: "List a document's notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteList,
}

var noteEditCmd = &cobra.Command{
	Use:   "edit [note-id] [content]",
	Short: "Replace a note's text",
	Args:  cobra.ExactArgs(2),
	RunE:  runNoteEdit,
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete [note-id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteDelete,
}

var noteDraftCmd = &cobra.Command{
	Use:   "draft [note-id]",
	Short: "Draft a note interactively with debounced autosave",
	Long: `Reads draft text from stdin line by line. Each line replaces the
pending draft and restarts the autosave timer; only the settled text is
written. The final draft is flushed on end of input.`,
	Args: cobra.ExactArgs(1),
	RunE: runNoteDraft,
}

// Flags for the add command.
var (
	noteSectionID string
	noteExcerpt   string
)

func init() {
	noteAddCmd.Flags().StringVarP(&noteSectionID, "section", "s", "", "Section to attach the note to")
	noteAddCmd.Flags().StringVarP(&noteExcerpt, "excerpt", "e", "", "Quote of the text the note refers to")
	_ = noteAddCmd.MarkFlagRequired("section")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteEditCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(noteDraftCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	note, err := noteService.Add(context.Background(), driving.NewNote{
		DocumentID: args[0],
		SectionID:  noteSectionID,
		Content:    args[1],
		Excerpt:    noteExcerpt,
	})
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	cmd.Printf("Note %s added.\n", note.ID)
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	notes, err := noteService.List(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(notes) == 0 {
		cmd.Println("No notes.")
		return nil
	}

	for i := range notes {
		cmd.Printf("  %s\n", notes[i].ID)
		if notes[i].SectionID != nil {
			cmd.Printf("    Section: %s\n", *notes[i].SectionID)
		} else {
			cmd.Println("    Section: (unassigned - in reassignment queue)")
		}
		if notes[i].Excerpt != "" {
			cmd.Printf("    On:      %q\n", notes[i].Excerpt)
		}
		cmd.Printf("    %s\n", notes[i].Content)
		cmd.Println()
	}
	cmd.Printf("Total: %d notes\n", len(notes))
	return nil
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	if err := noteService.SetContent(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to edit note: %w", err)
	}

	cmd.Printf("Note %s updated.\n", args[0])
	return nil
}

func runNoteDraft(cmd *cobra.Command, args []string) error {
	if noteService == nil || autosaveController == nil {
		return errors.New("note service not configured")
	}

	noteID := args[0]
	ctx := context.Background()

	// Fail early if the note doesn't exist.
	if _, err := noteService.Get(ctx, noteID); err != nil {
		return fmt.Errorf("failed to load note: %w", err)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		autosaveController.Queue(noteID, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading draft input: %w", err)
	}

	if err := autosaveController.Flush(ctx, noteID); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	cmd.Printf("Note %s saved.\n", noteID)
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return errors.New("note service not configured")
	}

	if err := noteService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	cmd.Printf("Note %s deleted.\n", args[0])
	return nil
}
