package scaffold

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dyluth/taskboard/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

// ConfigFile and StateDir are the paths Initialize creates, relative to the
// target directory.
const (
	ConfigFile = "taskboard.yml"
	StateDir   = ".taskboard"
)

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize writes taskboard.yml and the .taskboard/ state directory into dir.
// If force is true, an existing taskboard.yml is replaced; the state
// directory and any saved board are kept.
func Initialize(dir string, force bool) error {
	if !force {
		if err := CheckExisting(dir); err != nil {
			return err
		}
	}

	files, err := getTemplateFiles()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(dir, StateDir), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", StateDir, err)
	}

	if err := writeFiles(dir, files); err != nil {
		return err
	}

	return validateCreatedFiles(dir)
}

// getTemplateFiles reads all template files
func getTemplateFiles() ([]FileInfo, error) {
	configYml, err := templatesFS.ReadFile("templates/taskboard.yml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read taskboard.yml template: %w", err)
	}

	gitignore, err := templatesFS.ReadFile("templates/gitignore.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore template: %w", err)
	}

	return []FileInfo{
		{Path: ConfigFile, Content: configYml, Permissions: 0644},
		{Path: filepath.Join(StateDir, ".gitignore"), Content: gitignore, Permissions: 0644},
	}, nil
}

// writeFiles writes all template files below dir
func writeFiles(dir string, files []FileInfo) error {
	for _, file := range files {
		path := filepath.Join(dir, file.Path)
		if err := os.WriteFile(path, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

// validateCreatedFiles loads the written config through the normal loader
func validateCreatedFiles(dir string) error {
	if _, err := config.Load(filepath.Join(dir, ConfigFile)); err != nil {
		return fmt.Errorf("created %s is invalid: %w", ConfigFile, err)
	}
	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess(w io.Writer) {
	fmt.Fprintln(w, "\n✅ Successfully initialized taskboard!")
	fmt.Fprintln(w, "\nCreated:")
	fmt.Fprintf(w, "  ✓ %s\n", ConfigFile)
	fmt.Fprintf(w, "  ✓ %s/\n", StateDir)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Register a user: taskboard register <username> <password>")
	fmt.Fprintln(w, "  2. Log in:          taskboard login <username> <password>")
	fmt.Fprintln(w, "  3. Add a project:   taskboard project add --title \"My project\"")
}
