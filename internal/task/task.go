package task

import (
	"fmt"
	"strings"
)

// Kind classifies a task by whether it carries a schedule.
type Kind string

const (
	KindNormal    Kind = "normal"
	KindScheduled Kind = "scheduled"
)

// Anchor selects the date a rescheduled task advances from.
type Anchor string

const (
	FromDueDate        Anchor = "due_date"
	FromCompletionDate Anchor = "completion_date"
)

// ParseAnchor validates a reschedule basis.
func ParseAnchor(s string) (Anchor, error) {
	switch Anchor(s) {
	case FromDueDate, FromCompletionDate:
		return Anchor(s), nil
	}
	return "", fmt.Errorf("invalid reschedule basis %q, must be one of: due_date, completion_date", s)
}

// Label returns the basis in words, e.g. "Completion date".
func (a Anchor) Label() string {
	s := strings.ReplaceAll(string(a), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Reschedule advances the due date of a non-recurring task on completion.
type Reschedule struct {
	Interval int // days, > 0
	From     Anchor
}

// Next returns the due date that follows a completion on completedOn.
// From due_date steps the current due date forward until it lies after the
// completion; from completion_date counts from the completion itself.
func (r Reschedule) Next(due, completedOn Date) Date {
	if r.From == FromCompletionDate || due.IsZero() {
		return completedOn.AddDays(r.Interval)
	}
	next := due.AddDays(r.Interval)
	for !next.After(completedOn) {
		next = next.AddDays(r.Interval)
	}
	return next
}

// Recurring derives the due date from the last completion.
type Recurring struct {
	Completed *Date // nil until the first completion
	Duration  int   // days, > 0
}

// Task is one task document. It is a value: the With and Clear methods return
// an updated copy and leave the receiver untouched.
type Task struct {
	name       string
	priority   *int
	due        *Date
	preview    *int
	reschedule *Reschedule
	recurring  *Recurring
	history    []Date
}

// New returns a normal task with the given name.
func New(name string) (Task, error) {
	if err := validateName(name); err != nil {
		return Task{}, violation(err)
	}
	return Task{name: name}, nil
}

// Name returns the task name.
func (t Task) Name() string { return t.name }

// Priority returns the stored priority and whether it is set.
func (t Task) Priority() (int, bool) {
	if t.priority == nil {
		return 0, false
	}
	return *t.priority, true
}

// DisplayPriority returns the priority, defaulting to 0.
func (t Task) DisplayPriority() int {
	p, _ := t.Priority()
	return p
}

// Due returns the explicit due date of a non-recurring scheduled task.
func (t Task) Due() (Date, bool) {
	if t.due == nil {
		return Date{}, false
	}
	return *t.due, true
}

// Preview returns the preview window in days.
func (t Task) Preview() (int, bool) {
	if t.preview == nil {
		return 0, false
	}
	return *t.preview, true
}

// Reschedule returns the reschedule settings.
func (t Task) Reschedule() (Reschedule, bool) {
	if t.reschedule == nil {
		return Reschedule{}, false
	}
	return *t.reschedule, true
}

// Recurring returns the recurrence settings.
func (t Task) Recurring() (Recurring, bool) {
	if t.recurring == nil {
		return Recurring{}, false
	}
	return *t.recurring, true
}

// History returns a copy of the completion log, oldest first.
func (t Task) History() []Date {
	if len(t.history) == 0 {
		return nil
	}
	out := make([]Date, len(t.history))
	copy(out, t.history)
	return out
}

// LastCompletion returns the latest history entry.
func (t Task) LastCompletion() (Date, bool) {
	var last Date
	for _, d := range t.history {
		if last.IsZero() || d.After(last) {
			last = d
		}
	}
	return last, !last.IsZero()
}

// Kind classifies the task: scheduled iff it has a due date or a recurring
// block.
func (t Task) Kind() Kind {
	if t.due != nil || t.recurring != nil {
		return KindScheduled
	}
	return KindNormal
}

// DueDate returns the concrete due date, if one can be derived.
// Recurring tasks are due duration days after the last completion; other
// scheduled tasks are due on their due field. A reschedule block counted
// from completion_date without a due field falls back to the latest history
// entry plus the interval.
func (t Task) DueDate() (Date, bool) {
	if t.recurring != nil {
		if t.recurring.Completed == nil {
			return Date{}, false
		}
		return t.recurring.Completed.AddDays(t.recurring.Duration), true
	}
	if t.due == nil && t.reschedule != nil && t.reschedule.From == FromCompletionDate {
		if last, ok := t.LastCompletion(); ok {
			return last.AddDays(t.reschedule.Interval), true
		}
	}
	return t.Due()
}

// WithName returns a copy renamed to name. Use Validate to check the result.
func (t Task) WithName(name string) Task {
	t.name = name
	return t
}

// WithPriority returns a copy with priority set.
func (t Task) WithPriority(p int) Task {
	t.priority = &p
	return t
}

// ClearPriority returns a copy without a stored priority.
func (t Task) ClearPriority() Task {
	t.priority = nil
	return t
}

// WithDue returns a copy due on d.
func (t Task) WithDue(d Date) Task {
	t.due = &d
	return t
}

// ClearDue returns a copy without a due date.
func (t Task) ClearDue() Task {
	t.due = nil
	return t
}

// WithPreview returns a copy with a preview window of days.
func (t Task) WithPreview(days int) Task {
	t.preview = &days
	return t
}

// ClearPreview returns a copy without a preview window.
func (t Task) ClearPreview() Task {
	t.preview = nil
	return t
}

// WithReschedule returns a copy with reschedule settings.
func (t Task) WithReschedule(r Reschedule) Task {
	t.reschedule = &r
	return t
}

// ClearReschedule returns a copy without reschedule settings.
func (t Task) ClearReschedule() Task {
	t.reschedule = nil
	return t
}

// WithRecurring returns a copy with recurrence settings.
func (t Task) WithRecurring(r Recurring) Task {
	if r.Completed != nil {
		c := *r.Completed
		r.Completed = &c
	}
	t.recurring = &r
	return t
}

// ClearRecurring returns a copy without recurrence settings.
func (t Task) ClearRecurring() Task {
	t.recurring = nil
	return t
}

// WithCompletion returns a copy with on appended to the history.
func (t Task) WithCompletion(on Date) Task {
	history := make([]Date, 0, len(t.history)+1)
	history = append(history, t.history...)
	t.history = append(history, on)
	return t
}

// MakeNormal returns a copy with every scheduling field removed.
func (t Task) MakeNormal() Task {
	t.due = nil
	t.reschedule = nil
	t.preview = nil
	t.recurring = nil
	return t
}

// Validate checks the invariants a stored task must satisfy.
func (t Task) Validate() error {
	var errs []error
	if err := validateName(t.name); err != nil {
		errs = append(errs, err)
	}
	if t.preview != nil && *t.preview < 0 {
		errs = append(errs, &ValidationError{
			Path: "preview",
			Err:  fmt.Errorf("must be a non-negative integer, got %d", *t.preview),
		})
	}
	if r := t.reschedule; r != nil {
		if r.Interval < 1 {
			errs = append(errs, &ValidationError{
				Path: "reschedule.interval",
				Err:  fmt.Errorf("must be a positive number of days, got %d", r.Interval),
			})
		}
		if _, err := ParseAnchor(string(r.From)); err != nil {
			errs = append(errs, &ValidationError{Path: "reschedule.from", Err: err})
		}
	}
	if r := t.recurring; r != nil {
		if r.Duration < 1 {
			errs = append(errs, &ValidationError{
				Path: "recurring.duration",
				Err:  fmt.Errorf("must be a positive number of days, got %d", r.Duration),
			})
		}
		if t.reschedule != nil {
			errs = append(errs, &ValidationError{
				Path: "recurring",
				Err:  fmt.Errorf("cannot be combined with reschedule"),
			})
		}
		if t.due != nil {
			errs = append(errs, &ValidationError{
				Path: "recurring",
				Err:  fmt.Errorf("cannot be combined with due; the due date is derived from the last completion"),
			})
		}
	}
	if len(errs) > 0 {
		return violation(errs...)
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Path: "name", Err: fmt.Errorf("cannot be empty")}
	}
	return nil
}
