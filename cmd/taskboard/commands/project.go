package commands

import (
	"fmt"
	"time"

	"github.com/dyluth/taskboard/internal/board"
	"github.com/dyluth/taskboard/internal/listing"
	"github.com/dyluth/taskboard/internal/printer"
	"github.com/dyluth/taskboard/internal/resolver"
	"github.com/dyluth/taskboard/internal/timespec"
	"github.com/spf13/cobra"
)

var (
	projectListOutput string
	projectAddTitle   string
	projectAddDue     string
	projectEditTitle  string
	projectEditDue    string
	projectSelectNone bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long: `Manage projects. Every project command needs a logged-in user.

Project IDs can be given in full or as a unique prefix of at least 6
characters.`,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long: `List projects in board order. The selected project is marked with *.

Output Formats:
  default - Table with ID, title, due date and task progress
  jsonl   - One JSON object per line with every field

Examples:
  taskboard project list
  taskboard project list -o jsonl | jq -r .title`,
	Args: cobra.NoArgs,
	RunE: runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a project and select it",
	Long: `Create a project and select it.

--due accepts YYYY-MM-DD, RFC3339, 'today', 'tomorrow', a day offset like
'3d', or a Go duration like '36h'. Defaults to today.

Examples:
  taskboard project add --title "Groceries"
  taskboard project add --title "Release" --due 2025-07-01`,
	Args: cobra.NoArgs,
	RunE: runProjectAdd,
}

var projectEditCmd = &cobra.Command{
	Use:   "edit <project-id>",
	Short: "Change a project's title or due date",
	Long: `Change a project's title or due date. Flags that are not given keep
their current value. A blank title is rejected.

Examples:
  taskboard project edit 4a7b2c --title "Weekly shop"
  taskboard project edit 4a7b2c --due tomorrow`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectEdit,
}

var projectRmCmd = &cobra.Command{
	Use:     "rm <project-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a project and all of its tasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectRm,
}

var projectSelectCmd = &cobra.Command{
	Use:   "select [project-id]",
	Short: "Select the project task commands act on",
	Long: `Select the project that task commands act on when --project is not given.

Examples:
  taskboard project select 4a7b2c
  taskboard project select --none`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProjectSelect,
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Print a project as JSON",
	Long: `Print a project, including its tasks, as a single JSON object.
Defaults to the selected project.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProjectShow,
}

func init() {
	projectListCmd.Flags().StringVarP(&projectListOutput, "output", "o", "default", "Output format (default or jsonl)")

	projectAddCmd.Flags().StringVarP(&projectAddTitle, "title", "t", "", "Project title (required)")
	projectAddCmd.Flags().StringVarP(&projectAddDue, "due", "d", "", "Due date (defaults to today)")

	projectEditCmd.Flags().StringVarP(&projectEditTitle, "title", "t", "", "New title")
	projectEditCmd.Flags().StringVarP(&projectEditDue, "due", "d", "", "New due date")

	projectSelectCmd.Flags().BoolVar(&projectSelectNone, "none", false, "Clear the selection")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectRmCmd)
	projectCmd.AddCommand(projectSelectCmd)
	projectCmd.AddCommand(projectShowCmd)
	rootCmd.AddCommand(projectCmd)
}

// openAuthenticatedSession opens a session and fails unless a user is
// logged in.
func openAuthenticatedSession(cmd *cobra.Command) (*session, error) {
	s, err := openSession(cmd.Context())
	if err != nil {
		return nil, err
	}

	if !s.board.LoggedIn() {
		s.Close()
		return nil, boardError("", board.ErrNotAuthenticated)
	}
	return s, nil
}

// resolveProject maps a full or short project id onto a project id.
func resolveProject(s *session, input string) (string, error) {
	id, err := resolver.ResolveProjectID(s.board.ProjectList(), input)
	if err != nil {
		return "", resolveError("project", err)
	}
	return id, nil
}

func parseDue(spec string) (string, error) {
	due, err := timespec.ParseDue(spec, time.Now())
	if err != nil {
		return "", printer.Error(
			"invalid due date",
			fmt.Sprintf("Error: %v", err),
			[]string{"Use YYYY-MM-DD, 'today', 'tomorrow' or a day offset like '3d'"},
		)
	}
	return due, nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	format, err := listing.ParseOutputFormat(projectListOutput)
	if err != nil {
		return printer.Error("invalid output format", err.Error(), nil)
	}

	s, err := openAuthenticatedSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	projects := s.board.ProjectList()
	if len(projects) == 0 && format == listing.OutputFormatDefault {
		printer.Info("No projects yet\n")
		printer.Muted("Create one with: taskboard project add --title \"My project\"\n")
		return nil
	}

	return listing.Projects(printer.Stdout, projects, s.board.SelectedProjectID(), format, time.Now())
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	due := ""
	if projectAddDue != "" {
		parsed, err := parseDue(projectAddDue)
		if err != nil {
			return err
		}
		due = parsed
	}

	s, err := openAuthenticatedSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.board.NewProject(ctx)
	if err != nil {
		return boardError("create project", err)
	}
	if due == "" {
		due = p.DueDate
	}

	if err := s.board.SaveProject(ctx, p.ID, projectAddTitle, due); err != nil {
		// Drop the blank project NewProject just added
		if cancelErr := s.board.CancelProject(ctx, p.ID); cancelErr != nil {
			printer.Warning("failed to discard new project: %v\n", cancelErr)
		}
		return boardError("save project", err)
	}

	printer.Success("Created project %s\n", p.ID)
	printer.Muted("Selected. Add tasks with: taskboard task add --title \"...\"\n")
	return nil
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openAuthenticatedSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveProject(s, args[0])
	if err != nil {
		return err
	}
	p, _ := s.board.Project(id)

	title := p.Title
	if cmd.Flags().Changed("title") {
		title = projectEditTitle
	}

	due := p.DueDate
	if cmd.Flags().Changed("due") {
		if due, err = parseDue(projectEditDue); err != nil {
			return err
		}
	}

	if err := s.board.SaveProject(ctx, id, title, due); err != nil {
		return boardError("save project", err)
	}

	printer.Success("Updated project %s\n", id)
	return nil
}

func runProjectRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openAuthenticatedSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := resolveProject(s, args[0])
	if err != nil {
		return err
	}

	if err := s.board.DeleteProject(ctx, id); err != nil {
		return boardError("delete project", err)
	}

	printer.Success("Deleted project %s\n", id)
	return nil
}

func runProjectSelect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if projectSelectNone == (len(args) == 1) {
		return printer.Error(
			"nothing to select",
			"Give a project ID or --none, not both.",
			nil,
		)
	}

	s, err := openAuthenticatedSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if projectSelectNone {
		if err := s.board.SelectProject(ctx, ""); err != nil {
			return boardError("clear selection", err)
		}
		printer.Success("Selection cleared\n")
		return nil
	}

	id, err := resolveProject(s, args[0])
	if err != nil {
		return err
	}

	if err := s.board.SelectProject(ctx, id); err != nil {
		return boardError("select project", err)
	}

	printer.Success("Selected project %s\n", id)
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	s, err := openAuthenticatedSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	id := s.board.SelectedProjectID()
	if len(args) == 1 {
		if id, err = resolveProject(s, args[0]); err != nil {
			return err
		}
	}
	if id == "" {
		return noProjectError()
	}

	p, _ := s.board.Project(id)
	return listing.FormatSingleJSON(printer.Stdout, p)
}

func noProjectError() error {
	return printer.Error(
		"no project selected",
		"",
		[]string{
			"Select one:\n     taskboard project select <project-id>",
			"Name it explicitly:\n     --project <project-id>",
		},
	)
}
