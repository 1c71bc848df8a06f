package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"classboard/internal/ui"
)

const Version = "0.1.0"

var dataPath string

var rootCmd = &cobra.Command{
	Use:           "classboard",
	Short:         "Classboard: local-first class committee workboard",
	Long:          "Classboard is a local-first CLI/TUI workboard: a kanban task board, a work log, and a point ledger for a small committee.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Storage path (dir of JSON files, or a .db file for SQLite)")

	rootCmd.AddCommand(
		newBoardCmd(),
		newTaskCmd(),
		newLogCmd(),
		newPointsCmd(),
		newPasswordCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
