package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nibzard/tickler/internal/report"
	"github.com/nibzard/tickler/internal/task"
)

func (a *app) newListCommand() *cobra.Command {
	var (
		kind string
		all  bool
		date string
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List task files",
		Long:    "List task files with their status. Done tasks are hidden unless --all is given.",
		Args:    maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := a.asOf(date)
			if err != nil {
				return err
			}
			opts := report.ListOptions{All: all}
			switch task.Kind(kind) {
			case "":
			case task.KindNormal, task.KindScheduled:
				opts.Kind = task.Kind(kind)
			default:
				return &FlagError{Flag: "kind", Msg: "must be 'normal' or 'scheduled'"}
			}

			entries, _, err := a.store.LoadAll()
			if err != nil {
				return err
			}
			return report.RenderList(a.out, report.Rows(entries, asOf, opts))
		},
	}
	f := cmd.Flags()
	f.StringVar(&kind, "kind", "", "Only list tasks of this kind (normal or scheduled)")
	f.BoolVar(&all, "all", false, "Include done tasks")
	f.StringVar(&date, "date", "", "Reference date for the status (YYYY-MM-DD, default today)")
	return cmd
}
