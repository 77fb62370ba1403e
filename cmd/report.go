package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nibzard/tickler/internal/report"
)

func (a *app) newReportCommand() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "report [DATE]",
		Short: "Report overdue, due and upcoming tasks",
		Long: `Report overdue, due and upcoming tasks as of DATE (default today).
Task files that cannot be read are listed at the end and never stop the report.`,
		Example: `  tickler report
  tickler report 2026-12-24`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if date != "" && date != args[0] {
					return usageErrorf("give the report date either as DATE or with --date, not both")
				}
				date = args[0]
			}
			asOf, err := a.asOf(date)
			if err != nil {
				return err
			}

			r, err := report.Generate(a.store, asOf)
			if err != nil {
				return err
			}
			return report.Render(a.out, r)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Reference date (YYYY-MM-DD, default today)")
	return cmd
}
