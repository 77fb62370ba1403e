// Package cmd implements the CLI command structure for tickler.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nibzard/tickler/internal/config"
	"github.com/nibzard/tickler/internal/logging"
	"github.com/nibzard/tickler/internal/store"
	"github.com/nibzard/tickler/internal/task"
	"github.com/nibzard/tickler/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// migrationNotice is printed when a legacy document is upgraded on save.
const migrationNotice = "Notice: This task used a legacy format and has been automatically updated."

// app carries the streams, clock and loaded state shared by all commands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	now         func() time.Time
	interactive func() bool
	pick        func(ctx context.Context, title string, choices []ui.Choice) (string, error)

	cfg    *config.ConfigWithSources
	logger *log.Logger
	store  *store.Store
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	a := &app{
		in:     in,
		out:    out,
		errOut: errOut,
		now:    time.Now,
		logger: logging.Discard(),
	}
	a.interactive = func() bool { return ui.Interactive(a.in, a.out) }
	a.pick = func(ctx context.Context, title string, choices []ui.Choice) (string, error) {
		return ui.Pick(ctx, a.in, a.out, title, choices)
	}
	return a
}

// Run executes the tickler CLI.
func Run(ctx context.Context, args []string) error {
	return newApp(os.Stdin, os.Stdout, os.Stderr).run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) error {
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	if errors.Is(err, ui.ErrCancelled) {
		return nil
	}
	return err
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tickler",
		Short: "Tickler - a file-based task and reminder tracker",
		Long: `Tickler keeps one task per JSON or YAML file in a directory and reports
what is overdue, due today and coming up.`,
		Version:           Version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return cmd.Help()
		},
	}
	root.SetVersionTemplate("tickler version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		a.newAddCommand(),
		a.newEditCommand(),
		a.newShowCommand(),
		a.newListCommand(),
		a.newReportCommand(),
		a.newCompleteCommand(),
		a.newDeleteCommand(),
		a.newCheckCommand(),
		a.newInitCommand(),
		a.newVersionCommand(),
	)
	return root
}

// setup loads configuration and opens the task store before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cws, err := config.LoadWithSources(cmd.Flags())
	if err != nil {
		return &UsageError{Err: fmt.Errorf("loading config: %w", err)}
	}
	cfg := cws.Config
	a.cfg = cws
	a.logger = logging.NewFromConfig(a.errOut, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)
	for _, field := range config.Fields() {
		a.logger.Debug("Config", "field", field, "value", cfg.Value(field), "source", cws.Sources[field])
	}

	opts, err := cfg.StoreOptions()
	if err != nil {
		return &UsageError{Err: err}
	}
	st, err := store.New(cfg.TasksDir, append(opts, store.WithLogger(a.logger))...)
	if err != nil {
		return &UsageError{Err: fmt.Errorf("opening tasks directory: %w", err)}
	}
	a.store = st
	return nil
}

// maxArgs is cobra.MaximumNArgs reported as a usage error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// minArgs is cobra.MinimumNArgs reported as a usage error.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// asOf returns the reference day: the --date value, or today.
func (a *app) asOf(value string) (task.Date, error) {
	if value == "" {
		return task.DateOf(a.now()), nil
	}
	return parseDateFlag("date", value)
}

// taskFile resolves the FILE argument, falling back to the picker when the
// session is interactive.
func (a *app) taskFile(ctx context.Context, args []string, title string) (string, error) {
	if len(args) > 0 {
		return a.store.Resolve(args[0])
	}
	if !a.interactive() {
		return "", usageErrorf("no task file given (pass FILE, or run in a terminal to pick one)")
	}

	entries, failures, err := a.store.LoadAll()
	if err != nil {
		return "", err
	}
	choices := make([]ui.Choice, 0, len(entries)+len(failures))
	for _, e := range entries {
		choices = append(choices, ui.Choice{Value: e.Path, Title: filepath.Base(e.Path), Note: e.Task.Name()})
	}
	for _, f := range failures {
		choices = append(choices, ui.Choice{Value: f.Path, Title: filepath.Base(f.Path), Note: "invalid"})
	}
	if len(choices) == 0 {
		return "", usageErrorf("no task files in %s", a.store.Dir())
	}
	return a.pick(ctx, title, choices)
}

// load reads a task file and prints the migration notice when the document
// was upgraded. Callers that load must save to persist the upgrade.
func (a *app) load(path string) (task.Document, error) {
	doc, err := a.store.Load(path)
	if err != nil {
		return task.Document{}, err
	}
	if doc.Migrated {
		fmt.Fprintln(a.out, migrationNotice)
	}
	return doc, nil
}

func parseDateFlag(flag, value string) (task.Date, error) {
	d, err := task.ParseDate(value)
	if err != nil {
		return task.Date{}, &FlagError{Flag: flag, Msg: "must be a date", Err: err}
	}
	return d, nil
}

func parseIntFlag(flag, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &FlagError{Flag: flag, Msg: "must be an integer"}
	}
	return n, nil
}

func parseNonNegativeFlag(flag, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, &FlagError{Flag: flag, Msg: "must be a non-negative integer"}
	}
	return n, nil
}

func parsePositiveFlag(flag, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, &FlagError{Flag: flag, Msg: "must be a positive number of days"}
	}
	return n, nil
}

func parseAnchorFlag(flag, value string) (task.Anchor, error) {
	anchor, err := task.ParseAnchor(value)
	if err != nil {
		return "", &FlagError{Flag: flag, Msg: "must be 'due_date' or 'completion_date'"}
	}
	return anchor, nil
}
