// Package report groups tasks by what needs attention on a given day.
package report

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/nibzard/tickler/internal/store"
	"github.com/nibzard/tickler/internal/task"
)

// Source provides the documents a report is built from.
type Source interface {
	LoadAll() ([]store.Entry, []store.Failure, error)
}

// Item is one task line of the report.
type Item struct {
	Name     string
	Path     string
	Priority int
	// Days is days late for overdue items and days ahead for upcoming ones.
	Days int
	Due  task.Date
}

// Report is the grouped view of a tasks directory as of one day.
type Report struct {
	AsOf     task.Date
	Overdue  []Item
	DueToday []Item
	Upcoming []Item
	// Tasks are pending normal tasks.
	Tasks []Item
	// Invalid holds the base names of files that failed to load.
	Invalid []string
	// Migrated holds the base names of files stored in a legacy shape.
	Migrated []string
}

// Empty reports whether there is nothing to show.
func (r *Report) Empty() bool {
	return len(r.Overdue) == 0 && len(r.DueToday) == 0 && len(r.Upcoming) == 0 &&
		len(r.Tasks) == 0 && len(r.Invalid) == 0
}

// Generate loads every document from src and builds the report.
func Generate(src Source, asOf task.Date) (*Report, error) {
	entries, failures, err := src.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return Build(entries, failures, asOf), nil
}

// Build groups entries by status as of asOf. Done, not-yet-due and undated
// scheduled tasks are left out.
func Build(entries []store.Entry, failures []store.Failure, asOf task.Date) *Report {
	r := &Report{AsOf: asOf}

	for _, e := range entries {
		status := task.ComputeStatus(e.Task, asOf)
		item := Item{
			Name:     e.Task.Name(),
			Path:     e.Path,
			Priority: e.Task.DisplayPriority(),
			Days:     status.Days,
			Due:      status.Due,
		}

		switch status.State {
		case task.Overdue:
			r.Overdue = append(r.Overdue, item)
		case task.DueToday:
			r.DueToday = append(r.DueToday, item)
		case task.Upcoming:
			r.Upcoming = append(r.Upcoming, item)
		case task.NotApplicable:
			if e.Task.Kind() == task.KindNormal {
				r.Tasks = append(r.Tasks, item)
			}
		}

		if e.Migrated {
			r.Migrated = append(r.Migrated, filepath.Base(e.Path))
		}
	}

	for _, f := range failures {
		r.Invalid = append(r.Invalid, filepath.Base(f.Path))
	}

	sort.SliceStable(r.Overdue, func(i, j int) bool {
		if r.Overdue[i].Days != r.Overdue[j].Days {
			return r.Overdue[i].Days > r.Overdue[j].Days
		}
		return byName(r.Overdue[i], r.Overdue[j])
	})
	sort.SliceStable(r.DueToday, func(i, j int) bool {
		return byName(r.DueToday[i], r.DueToday[j])
	})
	sort.SliceStable(r.Upcoming, func(i, j int) bool {
		if r.Upcoming[i].Days != r.Upcoming[j].Days {
			return r.Upcoming[i].Days < r.Upcoming[j].Days
		}
		return byName(r.Upcoming[i], r.Upcoming[j])
	})
	sort.SliceStable(r.Tasks, func(i, j int) bool {
		if r.Tasks[i].Priority != r.Tasks[j].Priority {
			return r.Tasks[i].Priority > r.Tasks[j].Priority
		}
		return byName(r.Tasks[i], r.Tasks[j])
	})
	sort.Strings(r.Invalid)
	sort.Strings(r.Migrated)

	return r
}

func byName(a, b Item) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Path < b.Path
}
