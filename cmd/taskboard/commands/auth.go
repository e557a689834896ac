package commands

import (
	"github.com/dyluth/taskboard/internal/printer"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <password>",
	Short: "Create a user account",
	Long: `Create a user account. Usernames must be unique and passwords must
contain at least 8 characters.

Registering does not log you in.

Examples:
  taskboard register alice password1`,
	Args: cobra.ExactArgs(2),
	RunE: runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in as a registered user",
	Long: `Log in as a registered user. The session is saved with the board and
survives until 'taskboard logout'.

Examples:
  taskboard login alice password1`,
	Args: cobra.ExactArgs(2),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered usernames",
	Args:  cobra.NoArgs,
	RunE:  runUsers,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(usersCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	username, password := args[0], args[1]

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.board.Register(ctx, username, password); err != nil {
		return boardError("register user", err)
	}

	printer.Success("User was successfully created\n")
	printer.Muted("Log in with: taskboard login %s <password>\n", username)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	username, password := args[0], args[1]

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.board.Login(ctx, username, password); err != nil {
		return boardError("log in", err)
	}

	printer.Success("Logged in as %s\n", username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.board.LoggedIn() {
		printer.Info("Not logged in\n")
		return nil
	}

	if err := s.board.Logout(ctx); err != nil {
		return boardError("log out", err)
	}

	printer.Success("Logged out\n")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	username := s.board.CurrentUsername()
	if username == "" {
		return printer.Error(
			"not logged in",
			"",
			[]string{"Log in:\n  taskboard login <username> <password>"},
		)
	}

	printer.Println(username)
	return nil
}

func runUsers(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	users := s.board.UserList()
	if len(users) == 0 {
		printer.Info("No users registered\n")
		return nil
	}

	current := s.board.CurrentUsername()
	for _, name := range users {
		if name == current {
			printer.Println("*", name)
			continue
		}
		printer.Println(" ", name)
	}
	return nil
}
