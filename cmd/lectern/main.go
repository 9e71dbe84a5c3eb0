// Command lectern is the entry point for the Lectern CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	configfile "github.com/lectern-labs/lectern-cli/internal/adapters/driven/config/file"
	sourcefile "github.com/lectern-labs/lectern-cli/internal/adapters/driven/source/file"
	"github.com/lectern-labs/lectern-cli/internal/adapters/driven/storage/sqlite"
	"github.com/lectern-labs/lectern-cli/internal/adapters/driving/cli"
	"github.com/lectern-labs/lectern-cli/internal/core/services"
	"github.com/lectern-labs/lectern-cli/internal/sectioners"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(config.GetString("data.dir"))
	if err != nil {
		return fmt.Errorf("opening workspace store: %w", err)
	}
	defer store.Close()

	source := sourcefile.NewReader()
	registry := sectioners.NewRegistry()

	autosaveDelay := time.Duration(config.GetInt("autosave.delay_ms")) * time.Millisecond
	autosave := services.NewAutosave(store, autosaveDelay)
	defer func() {
		// Persist anything still pending before the timers are dropped.
		if err := autosave.FlushAll(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: flushing autosave drafts: %v\n", err)
		}
		autosave.Close()
	}()

	cli.SetServices(cli.Services{
		Library:      services.NewLibraryService(store, source, registry),
		Reimport:     services.NewReimportService(store, source, registry),
		Reassignment: services.NewReassignmentService(store),
		Notes:        services.NewNoteService(store),
		Provocations: services.NewProvocationService(store),
		Autosave:     autosave,
		Config:       config,
	})

	return cli.Execute()
}
