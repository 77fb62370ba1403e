package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nibzard/tickler/internal/task"
)

type addOptions struct {
	priority           string
	due                string
	preview            string
	rescheduleInterval string
	rescheduleFrom     string
	recurringDuration  string
	recurringCompleted string
}

func (a *app) newAddCommand() *cobra.Command {
	var opts addOptions
	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Create a task file",
		Long: `Create a task file. Without scheduling flags the task is a normal task.
With --due, --reschedule-* or --recurring-* it becomes a scheduled task.`,
		Example: `  tickler add Buy milk
  tickler add "Pay rent" --due 2026-11-01 --reschedule-interval 30 --preview 3
  tickler add "Water plants" --recurring-duration 7`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := opts.build(strings.Join(args, " "))
			if err != nil {
				return err
			}
			path, err := a.store.Create(t)
			if err != nil {
				return fmt.Errorf("could not create the task file: %w", err)
			}
			fmt.Fprintf(a.out, "Success! Task file created at: %s\n", path)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.priority, "priority", "", "Priority (integer, higher is more important)")
	f.StringVar(&opts.due, "due", "", "Due date (YYYY-MM-DD)")
	f.StringVar(&opts.preview, "preview", "", "Days before the due date the task shows as upcoming")
	f.StringVar(&opts.rescheduleInterval, "reschedule-interval", "", "Days to move the due date on completion")
	f.StringVar(&opts.rescheduleFrom, "reschedule-from", "", "Reschedule basis: due_date or completion_date (default due_date)")
	f.StringVar(&opts.recurringDuration, "recurring-duration", "", "Days between completions of a recurring task")
	f.StringVar(&opts.recurringCompleted, "recurring-completed", "", "Last completion of a recurring task (YYYY-MM-DD)")
	return cmd
}

func (o addOptions) build(name string) (task.Task, error) {
	t, err := task.New(strings.TrimSpace(name))
	if err != nil {
		return task.Task{}, err
	}

	if o.priority != "" {
		p, err := parseIntFlag("priority", o.priority)
		if err != nil {
			return task.Task{}, err
		}
		t = t.WithPriority(p)
	}
	if o.due != "" {
		d, err := parseDateFlag("due", o.due)
		if err != nil {
			return task.Task{}, err
		}
		t = t.WithDue(d)
	}
	if o.preview != "" {
		n, err := parseNonNegativeFlag("preview", o.preview)
		if err != nil {
			return task.Task{}, err
		}
		t = t.WithPreview(n)
	}

	if o.rescheduleFrom != "" && o.rescheduleInterval == "" {
		return task.Task{}, &FlagError{Flag: "reschedule-from", Msg: "requires --reschedule-interval"}
	}
	if o.rescheduleInterval != "" {
		interval, err := parsePositiveFlag("reschedule-interval", o.rescheduleInterval)
		if err != nil {
			return task.Task{}, err
		}
		r := task.Reschedule{Interval: interval, From: task.FromDueDate}
		if o.rescheduleFrom != "" {
			if r.From, err = parseAnchorFlag("reschedule-from", o.rescheduleFrom); err != nil {
				return task.Task{}, err
			}
		}
		t = t.WithReschedule(r)
	}

	if o.recurringCompleted != "" && o.recurringDuration == "" {
		return task.Task{}, &FlagError{Flag: "recurring-completed", Msg: "requires --recurring-duration"}
	}
	if o.recurringDuration != "" {
		duration, err := parsePositiveFlag("recurring-duration", o.recurringDuration)
		if err != nil {
			return task.Task{}, err
		}
		rec := task.Recurring{Duration: duration}
		if o.recurringCompleted != "" {
			d, err := parseDateFlag("recurring-completed", o.recurringCompleted)
			if err != nil {
				return task.Task{}, err
			}
			rec.Completed = &d
		}
		t = t.WithRecurring(rec)
	}

	if err := t.Validate(); err != nil {
		return task.Task{}, err
	}
	return t, nil
}
