package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nibzard/tickler/internal/report"
	"github.com/nibzard/tickler/internal/task"
)

type editOptions struct {
	setName          string
	nameSet          bool
	setPriority      string
	removePriority   bool
	setDue           string
	setPreview       string
	removePreview    bool
	setInterval      string
	setFrom          string
	removeReschedule bool
	setDuration      string
	setCompleted     string
	removeRecurring  bool
	makeNormal       bool
	renameFile       bool
}

func (a *app) newEditCommand() *cobra.Command {
	var opts editOptions
	cmd := &cobra.Command{
		Use:   "edit [FILE]",
		Short: "Change fields of a task",
		Long: `Change fields of a task file. Without edit flags the current details are
shown and the file is left alone, unless it used a legacy format, in which
case it is rewritten in the current one.

--make-normal is applied before the other flags, so it can be combined with
--set-recurring-duration to turn a dated task into a recurring one.`,
		Example: `  tickler edit pay_rent.json --set-due 2026-12-01
  tickler edit buy_milk --set-name "Buy oat milk" --rename-file`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.taskFile(cmd.Context(), args, "Choose a task to edit")
			if err != nil {
				return err
			}
			opts.nameSet = cmd.Flags().Changed("set-name")
			return a.edit(path, opts, anyChanged(cmd.LocalNonPersistentFlags()))
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.setName, "set-name", "", "New task name")
	f.StringVar(&opts.setPriority, "set-priority", "", "New priority (integer)")
	f.BoolVar(&opts.removePriority, "remove-priority", false, "Reset the priority to the default (0)")
	f.StringVar(&opts.setDue, "set-due", "", "New due date (YYYY-MM-DD)")
	f.StringVar(&opts.setPreview, "set-preview", "", "New preview window in days")
	f.BoolVar(&opts.removePreview, "remove-preview", false, "Remove the preview window")
	f.StringVar(&opts.setInterval, "set-reschedule-interval", "", "New reschedule interval in days")
	f.StringVar(&opts.setFrom, "set-reschedule-from", "", "New reschedule basis: due_date or completion_date")
	f.BoolVar(&opts.removeReschedule, "remove-reschedule", false, "Remove the reschedule settings")
	f.StringVar(&opts.setDuration, "set-recurring-duration", "", "New recurrence duration in days")
	f.StringVar(&opts.setCompleted, "set-recurring-completed", "", "New last completion of a recurring task (YYYY-MM-DD)")
	f.BoolVar(&opts.removeRecurring, "remove-recurring", false, "Remove the recurrence settings")
	f.BoolVar(&opts.makeNormal, "make-normal", false, "Convert to a normal task, removing due, reschedule, preview and recurring")
	f.BoolVar(&opts.renameFile, "rename-file", false, "Rename the file after the new name (requires --set-name)")
	return cmd
}

// anyChanged reports whether any of the command's own flags were set.
func anyChanged(fs *pflag.FlagSet) bool {
	changed := false
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed && f.Name != "help" {
			changed = true
		}
	})
	return changed
}

func (a *app) edit(path string, opts editOptions, changed bool) error {
	if opts.renameFile && !opts.nameSet {
		return &FlagError{Flag: "rename-file", Msg: "can only be used when also using --set-name"}
	}

	doc, err := a.load(path)
	if err != nil {
		return err
	}

	if !changed {
		if err := report.RenderDetails(a.out, doc.Task, task.DateOf(a.now())); err != nil {
			return err
		}
		if !doc.Migrated {
			return nil
		}
		return a.save(path, doc.Task)
	}

	fmt.Fprintln(a.out, "--- Editing Task (Non-Interactive) ---")
	updated, err := opts.apply(doc.Task, a.out)
	if err != nil {
		return err
	}
	if err := updated.Validate(); err != nil {
		return err
	}

	if opts.renameFile {
		newPath, err := a.store.Rename(path, updated)
		if err != nil {
			fmt.Fprintln(a.errOut, "Could not rename the file. Reverting name change.")
			if err := a.save(path, updated.WithName(doc.Task.Name())); err != nil {
				return err
			}
			return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
		}
		fmt.Fprintf(a.out, "File successfully renamed to '%s'.\n", filepath.Base(newPath))
		fmt.Fprintf(a.out, "\nSuccess! Task file updated at: %s\n", newPath)
		return nil
	}
	return a.save(path, updated)
}

func (a *app) save(path string, t task.Task) error {
	if err := a.store.Save(path, t); err != nil {
		return fmt.Errorf("could not save the updated task file: %w", err)
	}
	fmt.Fprintf(a.out, "\nSuccess! Task file updated at: %s\n", path)
	return nil
}

// apply runs the requested edits in a fixed order and reports each one.
func (o editOptions) apply(t task.Task, out io.Writer) (task.Task, error) {
	say := func(format string, args ...any) { fmt.Fprintf(out, format+"\n", args...) }

	if o.makeNormal {
		t = t.MakeNormal()
		say("Converted to a normal task.")
	}
	if o.nameSet {
		next, err := task.New(o.setName)
		if err != nil {
			return task.Task{}, err
		}
		t = t.WithName(next.Name())
		say("Name set to: %s", o.setName)
	}
	if o.setPriority != "" {
		p, err := parseIntFlag("set-priority", o.setPriority)
		if err != nil {
			return task.Task{}, err
		}
		t = t.WithPriority(p)
		say("Priority set to: %d", p)
	}
	if o.removePriority {
		t = t.ClearPriority()
		say("Priority reset to default (0).")
	}
	if o.setDue != "" {
		d, err := parseDateFlag("set-due", o.setDue)
		if err != nil {
			return task.Task{}, err
		}
		t = t.WithDue(d)
		say("Due date set to: %s", d)
	}
	if o.setPreview != "" {
		n, err := parseNonNegativeFlag("set-preview", o.setPreview)
		if err != nil {
			return task.Task{}, err
		}
		t = t.WithPreview(n)
		say("Preview set to: %d days", n)
	}
	if o.removePreview {
		t = t.ClearPreview()
		say("Preview removed.")
	}

	if o.setInterval != "" || o.setFrom != "" {
		r, ok := t.Reschedule()
		if !ok {
			r = task.Reschedule{From: task.FromDueDate}
		}
		if o.setInterval != "" {
			n, err := parsePositiveFlag("set-reschedule-interval", o.setInterval)
			if err != nil {
				return task.Task{}, err
			}
			r.Interval = n
			say("Reschedule interval set to: %d", n)
		}
		if o.setFrom != "" {
			anchor, err := parseAnchorFlag("set-reschedule-from", o.setFrom)
			if err != nil {
				return task.Task{}, err
			}
			r.From = anchor
			say("Reschedule basis set to: %s", anchor)
		}
		t = t.WithReschedule(r)
	}
	if o.removeReschedule {
		t = t.ClearReschedule()
		say("Reschedule settings removed.")
	}

	if o.setDuration != "" || o.setCompleted != "" {
		rec, _ := t.Recurring()
		if o.setDuration != "" {
			n, err := parsePositiveFlag("set-recurring-duration", o.setDuration)
			if err != nil {
				return task.Task{}, err
			}
			rec.Duration = n
			say("Recurring duration set to: %d days", n)
		}
		if o.setCompleted != "" {
			d, err := parseDateFlag("set-recurring-completed", o.setCompleted)
			if err != nil {
				return task.Task{}, err
			}
			rec.Completed = &d
			say("Last completion set to: %s", d)
		}
		t = t.WithRecurring(rec)
	}
	if o.removeRecurring {
		t = t.ClearRecurring()
		say("Recurring settings removed.")
	}
	return t, nil
}
