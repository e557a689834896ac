package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	configPath string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Taskboard - projects and tasks from the terminal",
	Long: `Taskboard keeps projects with due dates and the tasks inside them.

Users register and log in locally; every change is saved straight away to the
configured storage backend (SQLite file, Redis, or memory).

Get started:
  taskboard init
  taskboard register alice password1
  taskboard login alice password1
  taskboard project add --title "Groceries" --due 3d
  taskboard task add --title "Milk" --priority high`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Internal component logs are only shown with --verbose
		if verbose {
			log.SetOutput(os.Stderr)
		} else {
			log.SetOutput(io.Discard)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "taskboard.yml", "Path to taskboard.yml (defaults apply if missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show internal logs on stderr")
}
