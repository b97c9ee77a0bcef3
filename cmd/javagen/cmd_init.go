package main

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/cobra"
)

//go:embed init/javagen.yaml
var configTemplate string

//go:embed init/project.yaml
var projectTemplate string

func newInitCmd() *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter javagen.yaml and project.yaml",
		Long: `Write a starter javagen.yaml and project.yaml.

The project name defaults to the directory basename in snake case. Existing
files are left untouched.

Examples:
  javagen init shop
  javagen init -p inventory .`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			name := projectName
			if name == "" {
				absDir, err := filepath.Abs(dir)
				if err != nil {
					return fmt.Errorf("resolve directory: %w", err)
				}
				name = strcase.ToSnake(filepath.Base(absDir))
			}
			return runInit(cmd.OutOrStdout(), dir, name)
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "project name (defaults to directory name)")

	return cmd
}

func runInit(w io.Writer, dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	files := []struct {
		name    string
		content string
	}{
		{"javagen.yaml", configTemplate},
		{"project.yaml", strings.ReplaceAll(projectTemplate, "{{PROJECT}}", name)},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(w, "%s already exists\n", f.name)
			continue
		}
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("create %s: %w", f.name, err)
		}
		fmt.Fprintf(w, "Created %s\n", f.name)
	}

	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  - Edit project.yaml")
	fmt.Fprintln(w, "  - Check: javagen check project.yaml")
	fmt.Fprintf(w, "  - Generate: javagen generate -c %s project.yaml\n", filepath.Join(dir, "javagen.yaml"))
	return nil
}
