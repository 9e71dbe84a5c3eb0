// Package cli implements the lectern command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
	"github.com/lectern-labs/lectern-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services the commands operate on, injected by the composition root.
var (
	libraryService     driving.LibraryService
	reimportService    driving.ReimportService
	reassignService    driving.ReassignmentService
	noteService        driving.NoteService
	provocationService driving.ProvocationService
	autosaveController driving.AutosaveController
	configStore        driven.ConfigStore
)

// Services bundles everything the CLI needs.
type Services struct {
	Library      driving.LibraryService
	Reimport     driving.ReimportService
	Reassignment driving.ReassignmentService
	Notes        driving.NoteService
	Provocations driving.ProvocationService
	Autosave     driving.AutosaveController
	Config       driven.ConfigStore
}

// SetServices wires the service implementations into the commands.
func SetServices(s Services) {
	libraryService = s.Library
	reimportService = s.Reimport
	reassignService = s.Reassignment
	noteService = s.Notes
	provocationService = s.Provocations
	autosaveController = s.Autosave
	configStore = s.Config
}

// verboseFlag enables debug logging.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "A reading companion that keeps your notes attached to changing documents",
	Long: `Lectern imports documents into a personal library, splits them into
addressable sections, and keeps notes and AI provocations coherent when
the underlying files change and are re-imported.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
