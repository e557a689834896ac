package commands

import (
	"fmt"
	"time"

	"github.com/dyluth/taskboard/internal/draft"
	"github.com/dyluth/taskboard/internal/listing"
	"github.com/dyluth/taskboard/internal/printer"
	"github.com/dyluth/taskboard/internal/resolver"
	"github.com/dyluth/taskboard/internal/view"
	"github.com/dyluth/taskboard/pkg/taskboard"
	"github.com/spf13/cobra"
)

var (
	taskProject string

	taskListSort   string
	taskListFilter string
	taskListOutput string

	taskTitle       string
	taskDescription string
	taskPriority    string
	taskStatus      string
	taskDue         string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the tasks of a project",
	Long: `Manage the tasks of a project. Task commands act on the selected project
unless --project is given, and need a logged-in user.

Task IDs can be given in full or as a unique prefix of at least 6 characters.`,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List the tasks of a project.

Sorting:
  --sort priority  high, medium, low
  --sort status    pending, inprogress, completed
  Ties keep their board order.

Filtering:
  --filter ALL (default), high, medium, low, pending, inprogress or completed

Examples:
  taskboard task list
  taskboard task list --sort priority --filter pending
  taskboard task list --project 4a7b2c -o jsonl`,
	Args: cobra.NoArgs,
	RunE: runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a task",
	Long: `Add a task. New tasks are medium priority, pending and due today unless
flags say otherwise.

Examples:
  taskboard task add --title "Milk" --priority high
  taskboard task add --title "Write notes" --status inprogress --due 2d`,
	Args: cobra.NoArgs,
	RunE: runTaskAdd,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Change a task",
	Long: `Change a task. Only the flags given are changed; the task keeps its
position in the project.

Examples:
  taskboard task edit 9f3e1d --status completed
  taskboard task edit 9f3e1d --title "Oat milk" --priority low`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskEdit,
}

var taskRmCmd = &cobra.Command{
	Use:     "rm <task-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskRm,
}

func init() {
	taskCmd.PersistentFlags().StringVarP(&taskProject, "project", "p", "", "Project ID (defaults to the selected project)")

	taskListCmd.Flags().StringVarP(&taskListSort, "sort", "s", "", "Sort by priority or status")
	taskListCmd.Flags().StringVarP(&taskListFilter, "filter", "f", string(view.FilterAll), "Show one bucket")
	taskListCmd.Flags().StringVarP(&taskListOutput, "output", "o", "default", "Output format (default or jsonl)")

	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().StringVarP(&taskTitle, "title", "t", "", "Task title")
		c.Flags().StringVar(&taskDescription, "description", "", "Task description")
		c.Flags().StringVar(&taskPriority, "priority", "", "high, medium or low")
		c.Flags().StringVar(&taskStatus, "status", "", "pending, inprogress or completed")
		c.Flags().StringVarP(&taskDue, "due", "d", "", "Due date")
	}

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskRmCmd)
	rootCmd.AddCommand(taskCmd)
}

// targetProject resolves --project, falling back to the selected project.
func targetProject(s *session) (taskboard.Project, error) {
	id := s.board.SelectedProjectID()
	if taskProject != "" {
		resolved, err := resolveProject(s, taskProject)
		if err != nil {
			return taskboard.Project{}, err
		}
		id = resolved
	}

	if id == "" {
		return taskboard.Project{}, noProjectError()
	}

	p, _ := s.board.Project(id)
	return p, nil
}

// taskEdits builds edits from the task flags the user actually set.
func taskEdits(cmd *cobra.Command) ([]draft.Edit, error) {
	var edits []draft.Edit
	flags := cmd.Flags()

	if flags.Changed("title") {
		edits = append(edits, draft.SetTitle(taskTitle))
	}
	if flags.Changed("description") {
		edits = append(edits, draft.SetDescription(taskDescription))
	}
	if flags.Changed("priority") {
		edits = append(edits, draft.SetPriority(taskPriority))
	}
	if flags.Changed("status") {
		edits = append(edits, draft.SetStatus(taskStatus))
	}
	if flags.Changed("due") {
		due, err := parseDue(taskDue)
		if err != nil {
			return nil, err
		}
		edits = append(edits, draft.SetDueDate(due))
	}

	return edits, nil
}

func invalidTaskError(err error) error {
	return printer.Error(
		"invalid task",
		fmt.Sprintf("Error: %v", err),
		[]string{"Priorities: high, medium, low. Statuses: pending, inprogress, completed."},
	)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	sortKey, err := view.ParseSortKey(taskListSort)
	if err != nil {
		return printer.Error("invalid sort", err.Error(), nil)
	}
	filter, err := view.ParseFilter(taskListFilter)
	if err != nil {
		return printer.Error("invalid filter", err.Error(), nil)
	}
	format, err := listing.ParseOutputFormat(taskListOutput)
	if err != nil {
		return printer.Error("invalid output format", err.Error(), nil)
	}

	s, err := openAuthenticatedSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := targetProject(s)
	if err != nil {
		return err
	}

	tasks := s.board.TasksForProject(p.ID, sortKey, filter)
	return listing.Tasks(printer.Stdout, p, tasks, format, time.Now())
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	edits, err := taskEdits(cmd)
	if err != nil {
		return err
	}

	s, err := openAuthenticatedSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := targetProject(s)
	if err != nil {
		return err
	}

	// Validate against a throwaway draft so bad flags never touch the board
	if _, err := draft.Apply(draft.NewTask(""), edits...); err != nil {
		return invalidTaskError(err)
	}

	task, err := s.board.NewTask(ctx, p.ID)
	if err != nil {
		return boardError("create task", err)
	}

	edited, err := draft.Apply(task, edits...)
	if err != nil {
		if cancelErr := s.board.CancelTask(ctx, p.ID, task.ID); cancelErr != nil {
			printer.Warning("failed to discard new task: %v\n", cancelErr)
		}
		return invalidTaskError(err)
	}

	if err := s.board.SaveTask(ctx, p.ID, edited); err != nil {
		return boardError("save task", err)
	}

	printer.Success("Added task %s to %s\n", task.ID, displayName(p))
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	edits, err := taskEdits(cmd)
	if err != nil {
		return err
	}
	if len(edits) == 0 {
		return printer.Error(
			"nothing to change",
			"",
			[]string{"Pass at least one of --title, --description, --priority, --status or --due"},
		)
	}

	s, err := openAuthenticatedSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := targetProject(s)
	if err != nil {
		return err
	}

	task, err := findTask(p, args[0])
	if err != nil {
		return err
	}

	edited, err := draft.Apply(task, edits...)
	if err != nil {
		return invalidTaskError(err)
	}

	if err := s.board.SaveTask(ctx, p.ID, edited); err != nil {
		return boardError("save task", err)
	}

	printer.Success("Updated task %s\n", task.ID)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openAuthenticatedSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := targetProject(s)
	if err != nil {
		return err
	}

	task, err := findTask(p, args[0])
	if err != nil {
		return err
	}

	if err := s.board.DeleteTask(ctx, p.ID, task.ID); err != nil {
		return boardError("delete task", err)
	}

	printer.Success("Deleted task %s\n", task.ID)
	return nil
}

// findTask resolves a full or short task id within p.
func findTask(p taskboard.Project, input string) (taskboard.Task, error) {
	id, err := resolver.ResolveTaskID(p.Tasks, input)
	if err != nil {
		return taskboard.Task{}, resolveError("task", err)
	}

	for _, t := range p.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return taskboard.Task{}, resolveError("task", &resolver.NotFoundError{Kind: "task", ShortID: input})
}

func displayName(p taskboard.Project) string {
	if p.Title == "" {
		return p.ID
	}
	return fmt.Sprintf("%q", p.Title)
}
