package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tickler/internal/utils"
)

// InvalidBanner introduces the list of files that could not be loaded.
const InvalidBanner = "The following task files are invalid or corrupt and were skipped:"

// styles are built per writer so colour is only emitted to terminals.
type styles struct {
	title    lipgloss.Style
	heading  lipgloss.Style
	overdue  lipgloss.Style
	today    lipgloss.Style
	upcoming lipgloss.Style
	normal   lipgloss.Style
	subtle   lipgloss.Style
	warning  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:    r.NewStyle().Bold(true),
		heading:  r.NewStyle().Bold(true).Underline(true),
		overdue:  r.NewStyle().Foreground(lipgloss.Color("9")),
		today:    r.NewStyle().Foreground(lipgloss.Color("11")),
		upcoming: r.NewStyle().Foreground(lipgloss.Color("12")),
		normal:   r.NewStyle(),
		subtle:   r.NewStyle().Faint(true),
		warning:  r.NewStyle().Foreground(lipgloss.Color("208")),
	}
}

// OverdueLine formats an overdue item, e.g. "Pay rent (was due 3 days ago)".
func OverdueLine(it Item) string {
	return fmt.Sprintf("%s (was due %s ago)", it.Name, utils.Plural(it.Days, "day"))
}

// UpcomingLine formats an upcoming item, e.g. "Dentist (due in 1 day)".
func UpcomingLine(it Item) string {
	return fmt.Sprintf("%s (due in %s)", it.Name, utils.Plural(it.Days, "day"))
}

// Render writes the report as text. Styling depends on w; the words do not.
func Render(w io.Writer, r *Report) error {
	st := newStyles(w)
	var b strings.Builder

	b.WriteString(st.title.Render("Tickler report for "+r.AsOf.String()) + "\n")

	section := func(title string, items []Item, style lipgloss.Style, line func(Item) string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n" + st.heading.Render(title) + "\n")
		for _, it := range items {
			b.WriteString("  " + style.Render(line(it)) + "\n")
		}
	}

	name := func(it Item) string { return it.Name }
	section("Overdue", r.Overdue, st.overdue, OverdueLine)
	section("Due Today", r.DueToday, st.today, name)
	section("Upcoming", r.Upcoming, st.upcoming, UpcomingLine)
	section("Tasks", r.Tasks, st.normal, name)

	if len(r.Overdue)+len(r.DueToday)+len(r.Upcoming)+len(r.Tasks) == 0 {
		b.WriteString("\n" + st.subtle.Render("Nothing needs attention.") + "\n")
	}

	if len(r.Invalid) > 0 {
		b.WriteString("\n" + st.warning.Render(InvalidBanner) + "\n")
		for _, name := range r.Invalid {
			b.WriteString("- " + name + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
