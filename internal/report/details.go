package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/tickler/internal/task"
	"github.com/nibzard/tickler/internal/utils"
)

// RenderDetails writes the detail block for one task.
func RenderDetails(w io.Writer, t task.Task, asOf task.Date) error {
	st := newStyles(w)
	var b strings.Builder

	field := func(label, value string) {
		b.WriteString(st.subtle.Render(label+":") + " " + value + "\n")
	}

	b.WriteString(st.title.Render("--- Current Task Details ---") + "\n")
	field("Name", t.Name())
	kind := string(t.Kind())
	field("Type", strings.ToUpper(kind[:1])+kind[1:])
	field("Priority", fmt.Sprint(t.DisplayPriority()))

	if due, ok := t.Due(); ok {
		field("Due Date", due.String())
	}
	if r, ok := t.Reschedule(); ok {
		field("Reschedules", "Every "+utils.Plural(r.Interval, "day"))
		field("Reschedule from", r.From.Label())
	}
	if rec, ok := t.Recurring(); ok {
		field("Recurs", "Every "+utils.Plural(rec.Duration, "day"))
		if rec.Completed != nil {
			field("Last completed", rec.Completed.String())
		} else {
			field("Last completed", "never")
		}
	}
	if preview, ok := t.Preview(); ok {
		field("Preview", utils.Plural(preview, "day")+" in advance")
	}
	if history := t.History(); len(history) > 0 {
		dates := make([]string, len(history))
		for i, d := range history {
			dates[i] = d.String()
		}
		field("History", strings.Join(dates, ", "))
	}

	status := task.ComputeStatus(t, asOf)
	field("Status", StatusText(status))
	if _, explicit := t.Due(); !explicit {
		if due, ok := t.DueDate(); ok {
			field("Next due", due.String())
		}
	}
	b.WriteString(st.title.Render("---------------------------") + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
