package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dyluth/taskboard/internal/printer"
	"github.com/dyluth/taskboard/internal/scaffold"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new taskboard in the current directory",
	Long: `Initialize a new taskboard by creating:
  • taskboard.yml - storage backend and instance settings
  • .taskboard/   - directory holding the SQLite board file

The directory of --config is used, so 'taskboard init -c work/taskboard.yml'
initializes work/.

Use --force to regenerate taskboard.yml. Saved projects and users are kept.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing taskboard.yml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := filepath.Dir(configPath)

	if err := scaffold.Initialize(dir, forceInit); err != nil {
		if strings.Contains(err.Error(), "already initialized") {
			return printer.Error(
				"board already initialized",
				fmt.Sprintf("Found existing: %s", filepath.Join(dir, scaffold.ConfigFile)),
				[]string{"Reinitialize (keeps saved data):\n  taskboard init --force"},
			)
		}
		return printer.Error("failed to initialize board", fmt.Sprintf("Error: %v", err), nil)
	}

	scaffold.PrintSuccess(printer.Stdout)
	return nil
}
