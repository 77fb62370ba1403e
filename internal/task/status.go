package task

import "fmt"

// State is the reporting state of a task on a given day.
type State int

const (
	// NotApplicable: a pending normal task, or a scheduled task with no
	// derivable due date.
	NotApplicable State = iota
	// Done: a normal task with history.
	Done
	Overdue
	DueToday
	Upcoming
	// NotDue: due later than the preview window reaches.
	NotDue
)

func (s State) String() string {
	switch s {
	case NotApplicable:
		return "not applicable"
	case Done:
		return "done"
	case Overdue:
		return "overdue"
	case DueToday:
		return "due today"
	case Upcoming:
		return "upcoming"
	case NotDue:
		return "not due"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Status is the result of ComputeStatus.
type Status struct {
	State State
	// Days is days late for Overdue and days ahead for Upcoming and NotDue.
	Days int
	// Due is the derived due date; zero when none could be derived.
	Due Date
}

// ComputeStatus classifies t as of the reference day asOf. It never reads
// the clock.
func ComputeStatus(t Task, asOf Date) Status {
	if t.Kind() == KindNormal {
		if len(t.history) > 0 {
			return Status{State: Done}
		}
		return Status{State: NotApplicable}
	}

	due, ok := t.DueDate()
	if !ok {
		return Status{State: NotApplicable}
	}

	ahead := due.DaysSince(asOf)
	switch {
	case ahead < 0:
		return Status{State: Overdue, Days: -ahead, Due: due}
	case ahead == 0:
		return Status{State: DueToday, Due: due}
	}

	preview, _ := t.Preview()
	if ahead <= preview {
		return Status{State: Upcoming, Days: ahead, Due: due}
	}
	return Status{State: NotDue, Days: ahead, Due: due}
}

// Complete records a completion on the given day and advances the schedule:
// recurring tasks restart from on, rescheduled tasks move their due date and
// a one-off dated task drops its due date and preview, becoming a done normal
// task.
func Complete(t Task, on Date) Task {
	next := t.WithCompletion(on)
	switch {
	case t.recurring != nil:
		next = next.WithRecurring(Recurring{Completed: &on, Duration: t.recurring.Duration})
	case t.reschedule != nil && t.due != nil:
		next = next.WithDue(t.reschedule.Next(*t.due, on))
	case t.due != nil:
		next = next.ClearDue().ClearPreview()
	}
	return next
}
