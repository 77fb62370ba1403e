package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nibzard/tickler/internal/task"
)

func (a *app) newCompleteCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:     "complete [FILE]",
		Aliases: []string{"done"},
		Short:   "Record a completion and advance the schedule",
		Long: `Record a completion on --date (default today). Recurring tasks restart their
interval from that day and rescheduled tasks move their due date.`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := a.asOf(date)
			if err != nil {
				return err
			}
			path, err := a.taskFile(cmd.Context(), args, "Choose a task to complete")
			if err != nil {
				return err
			}
			doc, err := a.load(path)
			if err != nil {
				return err
			}

			next := task.Complete(doc.Task, on)
			fmt.Fprintf(a.out, "Completed '%s' on %s.\n", next.Name(), on)
			if due, ok := next.DueDate(); ok {
				fmt.Fprintf(a.out, "Next due: %s\n", due)
			}
			return a.save(path, next)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Completion date (YYYY-MM-DD, default today)")
	return cmd
}
