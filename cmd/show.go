package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nibzard/tickler/internal/report"
)

func (a *app) newShowCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Show the details of a task",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := a.asOf(date)
			if err != nil {
				return err
			}
			path, err := a.taskFile(cmd.Context(), args, "Choose a task to show")
			if err != nil {
				return err
			}
			doc, err := a.store.Load(path)
			if err != nil {
				return err
			}
			if doc.Migrated {
				a.logger.Info("Task uses a legacy format; it is upgraded on the next edit or completion", "path", path)
			}
			return report.RenderDetails(a.out, doc.Task, asOf)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Reference date for the status (YYYY-MM-DD, default today)")
	return cmd
}
