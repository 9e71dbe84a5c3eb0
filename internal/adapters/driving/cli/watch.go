package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lectern-labs/lectern-cli/internal/adapters/driving/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [doc-id...]",
	Short: "Reimport documents automatically when their sources change",
	Long: `Watches the source files of the given documents (or the whole library
when none are given) and reimports each document when its file changes.
Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if libraryService == nil || reimportService == nil {
		return errors.New("library or reimport service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	debounce := watcher.DefaultDebounce
	if configStore != nil {
		if ms := configStore.GetInt("watch.debounce_ms"); ms > 0 {
			debounce = time.Duration(ms) * time.Millisecond
		}
	}

	w, err := watcher.New(reimportService, debounce)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	ids := args
	if len(ids) == 0 {
		docs, err := libraryService.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		for _, doc := range docs {
			ids = append(ids, doc.ID)
		}
	}
	if len(ids) == 0 {
		return errors.New("nothing to watch: the library is empty")
	}

	for _, id := range ids {
		doc, err := libraryService.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load document %s: %w", id, err)
		}
		if err := w.Add(doc.SourcePath, doc.ID); err != nil {
			return err
		}
		cmd.Printf("Watching %s (%s)\n", doc.Title, doc.SourcePath)
	}

	cmd.Println("Press Ctrl+C to stop.")
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
