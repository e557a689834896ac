package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/taskboard/internal/config"
	"github.com/dyluth/taskboard/internal/listing"
	"github.com/dyluth/taskboard/internal/printer"
	"github.com/dyluth/taskboard/internal/watch"
	"github.com/dyluth/taskboard/pkg/taskboard"
	"github.com/spf13/cobra"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow board changes live",
	Long: `Follow board changes made by any taskboard process sharing the same
Redis instance. After every board write the project list is printed again.

Requires the redis storage backend.

Output Formats:
  default - One line per change followed by the project list
  json    - One JSON object per change

Examples:
  taskboard watch
  taskboard watch -o json | jq .key

Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "default", "Output format (default or json)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	format := watch.OutputFormat(watchOutput)
	if format != watch.OutputFormatDefault && format != watch.OutputFormatJSON {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutput),
			[]string{"Use 'default' or 'json'"},
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Storage.Backend != config.BackendRedis {
		return printer.ErrorWithContext(
			"watch needs the redis backend",
			"Only Redis announces board changes to other processes.",
			map[string]string{"Backend": cfg.Storage.Backend},
			[]string{"Set storage.backend: redis in taskboard.yml, or:\n  TASKBOARD_STORAGE=redis taskboard watch"},
		)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	subscriber, ok := storage.(taskboard.StateSubscriber)
	if !ok {
		return fmt.Errorf("storage backend %s cannot stream events", cfg.Storage.Backend)
	}

	if format == watch.OutputFormatDefault {
		printer.Info("Watching instance '%s'...\n\n", cfg.Instance)
	}

	return watch.StreamStateEvents(ctx, subscriber, format, printer.Stdout, renderProjects(storage))
}

// renderProjects prints the stored project list. It only reads, so it never
// triggers another event.
func renderProjects(storage taskboard.Storage) watch.RenderFunc {
	return func(ctx context.Context, w io.Writer) error {
		raw, err := storage.GetItem(ctx, taskboard.AppStateKey)
		if err != nil {
			return err
		}

		state, err := taskboard.DecodeAppState(raw)
		if err != nil {
			return err
		}

		selected := ""
		if state.Projects.SelectedProject != nil {
			selected = *state.Projects.SelectedProject
		}

		if err := listing.Projects(w, state.Projects.Items, selected, listing.OutputFormatDefault, time.Now()); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return nil
	}
}
