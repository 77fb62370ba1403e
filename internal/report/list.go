package report

import (
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/tickler/internal/store"
	"github.com/nibzard/tickler/internal/task"
	"github.com/nibzard/tickler/internal/utils"
)

// maxListName keeps long names from blowing up the table width.
const maxListName = 48

// Row is one line of the task listing.
type Row struct {
	File     string
	Name     string
	Kind     task.Kind
	Priority int
	Due      task.Date
	Status   task.Status
}

// ListOptions filters a listing.
type ListOptions struct {
	// Kind restricts rows to one kind; empty means both.
	Kind task.Kind
	// All includes done tasks.
	All bool
}

// Rows computes listing rows, sorted by file name.
func Rows(entries []store.Entry, asOf task.Date, opts ListOptions) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		if opts.Kind != "" && e.Task.Kind() != opts.Kind {
			continue
		}
		status := task.ComputeStatus(e.Task, asOf)
		if status.State == task.Done && !opts.All {
			continue
		}
		rows = append(rows, Row{
			File:     filepath.Base(e.Path),
			Name:     e.Task.Name(),
			Kind:     e.Task.Kind(),
			Priority: e.Task.DisplayPriority(),
			Due:      status.Due,
			Status:   status,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].File < rows[j].File })
	return rows
}

// StatusText describes a status in a few words.
func StatusText(s task.Status) string {
	switch s.State {
	case task.Overdue:
		return "overdue " + utils.Plural(s.Days, "day")
	case task.Upcoming, task.NotDue:
		return "in " + utils.Plural(s.Days, "day")
	case task.NotApplicable:
		return "pending"
	}
	return s.State.String()
}

// RenderList writes rows as a table.
func RenderList(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, "No tasks.\n")
		return err
	}

	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	overdueStyle := cellStyle.Foreground(lipgloss.Color("9"))

	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		due := row.Due.String()
		if due == "" {
			due = "-"
		}
		data = append(data, []string{
			row.File,
			utils.Truncate(row.Name, maxListName),
			string(row.Kind),
			strconv.Itoa(row.Priority),
			due,
			StatusText(row.Status),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		Headers("FILE", "NAME", "TYPE", "PRIORITY", "DUE", "STATUS").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(rows) && rows[row].Status.State == task.Overdue {
				return overdueStyle
			}
			return cellStyle
		})

	out := t.Render()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}
