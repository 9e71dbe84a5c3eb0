package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the document library",
	Long:  `Import, list, inspect, relocate, or remove library documents.`,
}

var libraryImportCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import a document and commit its first revision",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryImport,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library documents",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var librarySectionsCmd = &cobra.Command{
	Use:   "sections [doc-id]",
	Short: "Show the sections of the current revision",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibrarySections,
}

var libraryLocateCmd = &cobra.Command{
	Use:   "locate [doc-id] [new-path]",
	Short: "Update a document's source path after the file moved",
	Long:  `Points the document at a new file location without creating a revision. Run reimport afterwards if the content also changed.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runLibraryLocate,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document and all its annotations",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

// importTitle is a flag for the import command.
var importTitle string

func init() {
	libraryImportCmd.Flags().StringVarP(&importTitle, "title", "t", "", "Document title (defaults to the file name)")

	libraryCmd.AddCommand(libraryImportCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(librarySectionsCmd)
	libraryCmd.AddCommand(libraryLocateCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	doc, err := libraryService.Import(context.Background(), args[0], importTitle)
	if err != nil {
		return fmt.Errorf("failed to import document: %w", err)
	}

	cmd.Printf("Imported %s\n", doc.Title)
	cmd.Printf("  ID:     %s\n", doc.ID)
	cmd.Printf("  Source: %s\n", doc.SourcePath)
	return nil
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	docs, err := libraryService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("The library is empty. Use 'lectern library import' to add a document.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title:  %s\n", docs[i].Title)
		cmd.Printf("    Source: %s\n", docs[i].SourcePath)
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runLibrarySections(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	sections, err := libraryService.Sections(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list sections: %w", err)
	}

	for _, s := range sections {
		heading := s.Heading
		if heading == "" {
			heading = "(no heading)"
		}
		cmd.Printf("  %2d  %-30s  %s  (%d words)\n", s.OrderIndex, s.AnchorKey, heading, s.WordCount)
	}
	cmd.Printf("Total: %d sections\n", len(sections))
	return nil
}

func runLibraryLocate(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Locate(context.Background(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to locate document: %w", err)
	}

	cmd.Printf("Document %s now points at %s\n", args[0], args[1])
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Remove(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Document %s removed.\n", args[0])
	return nil
}
