package cmd

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete [FILE]",
		Aliases: []string{"rm"},
		Short:   "Delete a task file",
		Args:    maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !a.interactive() {
				return usageErrorf("refusing to delete without confirmation; pass --yes")
			}
			path, err := a.taskFile(cmd.Context(), args, "Choose a task to delete")
			if err != nil {
				return err
			}
			if !yes && !a.confirm(fmt.Sprintf("Delete '%s'? (y/N): ", filepath.Base(path))) {
				fmt.Fprintln(a.out, "Nothing deleted.")
				return nil
			}
			if err := a.store.Delete(path); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s.\n", filepath.Base(path))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (a *app) confirm(prompt string) bool {
	fmt.Fprint(a.out, prompt)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
