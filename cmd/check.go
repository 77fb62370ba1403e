package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nibzard/tickler/internal/config"
	"github.com/nibzard/tickler/internal/store"
	"github.com/nibzard/tickler/internal/task"
)

func (a *app) newCheckCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and every task file",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also show where each config value came from")
	return cmd
}

func (a *app) check(verbose bool) error {
	fmt.Fprintln(a.out, "Tickler Check")
	fmt.Fprintln(a.out, "=============")
	fmt.Fprintln(a.out)

	if file := a.cfg.ConfigFile(); file != "" {
		fmt.Fprintf(a.out, "Config file: %s\n", file)
	} else {
		fmt.Fprintln(a.out, "Config file: none (using defaults)")
		if verbose {
			fmt.Fprintf(a.out, "  User config goes in %s\n", config.UserConfigPath())
		}
	}
	if verbose {
		for _, field := range config.Fields() {
			fmt.Fprintf(a.out, "  %-15s %-20s (%s)\n", field, a.cfg.Config.Value(field), a.cfg.Sources[field])
		}
		fmt.Fprintf(a.out, "  Legacy formats upgraded on save: %s\n", strings.Join(task.LegacyRuleNames(), ", "))
	}
	fmt.Fprintln(a.out)

	dir := a.store.Dir()
	fmt.Fprintf(a.out, "Tasks directory: %s\n", dir)
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(a.out, "  ⚠️  Not found (created on the first add; run 'tickler init' to create it now)")
		return nil
	case err != nil:
		fmt.Fprintf(a.out, "  ❌ Error: %v\n", err)
		return &store.PathError{Op: "stat", Path: dir, Err: err}
	case !info.IsDir():
		fmt.Fprintln(a.out, "  ❌ Error: path is not a directory")
		return usageErrorf("tasks directory %s is not a directory", dir)
	}
	fmt.Fprintln(a.out, "  ✅ OK")
	fmt.Fprintln(a.out)

	entries, failures, err := a.store.LoadAll()
	if err != nil {
		return err
	}

	type line struct {
		path string
		text string
	}
	var lines []line
	var legacy int
	for _, e := range entries {
		text := "  ✅ " + filepath.Base(e.Path)
		if e.Migrated {
			legacy++
			text = "  ⚠️  " + filepath.Base(e.Path) + ": legacy format (upgraded on the next edit or completion)"
		}
		lines = append(lines, line{e.Path, text})
	}
	for _, f := range failures {
		lines = append(lines, line{f.Path, fmt.Sprintf("  ❌ %s: %v", filepath.Base(f.Path), f.Err)})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].path < lines[j].path })

	total := len(entries) + len(failures)
	fmt.Fprintf(a.out, "Task files (%d):\n", total)
	for _, l := range lines {
		fmt.Fprintln(a.out, l.text)
	}
	fmt.Fprintln(a.out)

	if len(failures) > 0 {
		fmt.Fprintf(a.out, "⚠️  %d of %d task files are invalid.\n", len(failures), total)
		return fmt.Errorf("%d of %d: %w", len(failures), total, ErrCheckFailed)
	}
	if legacy > 0 {
		fmt.Fprintf(a.out, "✅ All task files are valid (%d in a legacy format).\n", legacy)
		return nil
	}
	fmt.Fprintln(a.out, "✅ All checks passed!")
	return nil
}
