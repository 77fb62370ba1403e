package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nibzard/tickler/internal/config"
	"github.com/nibzard/tickler/internal/store"
)

// projectConfigName is the file init writes in the working directory.
const projectConfigName = "tickler.toml"

func (a *app) newInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example tickler.toml and create the tasks directory",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing tickler.toml")
	return cmd
}

func (a *app) runInit(force bool) error {
	path, err := filepath.Abs(projectConfigName)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", projectConfigName, err)
	}

	_, err = os.Stat(path)
	switch {
	case err == nil && !force:
		fmt.Fprintf(a.out, "Config file already exists: %s (use --force to overwrite)\n", path)
	case err == nil || errors.Is(err, fs.ErrNotExist):
		if err := os.WriteFile(path, []byte(config.ExampleConfig()), 0644); err != nil {
			return &store.PathError{Op: "write", Path: path, Err: err}
		}
		fmt.Fprintf(a.out, "Created config file: %s\n", path)
	default:
		return &store.PathError{Op: "stat", Path: path, Err: err}
	}

	dir := a.store.Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &store.PathError{Op: "create", Path: dir, Err: err}
	}
	fmt.Fprintf(a.out, "Tasks directory: %s\n", dir)
	return nil
}
