package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/tickler/internal/store"
	"github.com/nibzard/tickler/internal/task"
)

func listEntries(t *testing.T) []store.Entry {
	return []store.Entry{
		{Path: "/t/pay_rent.json", Task: named(t, "Pay rent").WithDue(today.AddDays(-2)).WithPriority(3)},
		{Path: "/t/buy_milk.json", Task: named(t, "Buy milk")},
		{Path: "/t/done.json", Task: named(t, "Done thing").WithCompletion(today)},
		{Path: "/t/dentist.yaml", Task: named(t, "Dentist").WithDue(today.AddDays(20))},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(listEntries(t), today, ListOptions{})
	require.Len(t, rows, 3)
	assert.Equal(t, "buy_milk.json", rows[0].File)
	assert.Equal(t, "dentist.yaml", rows[1].File)
	assert.Equal(t, "pay_rent.json", rows[2].File)
	assert.Equal(t, task.Overdue, rows[2].Status.State)
	assert.Equal(t, 3, rows[2].Priority)

	all := Rows(listEntries(t), today, ListOptions{All: true})
	assert.Len(t, all, 4)

	scheduled := Rows(listEntries(t), today, ListOptions{Kind: task.KindScheduled})
	require.Len(t, scheduled, 2)
	for _, r := range scheduled {
		assert.Equal(t, task.KindScheduled, r.Kind)
	}
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "overdue 2 days", StatusText(task.Status{State: task.Overdue, Days: 2}))
	assert.Equal(t, "in 1 day", StatusText(task.Status{State: task.Upcoming, Days: 1}))
	assert.Equal(t, "in 20 days", StatusText(task.Status{State: task.NotDue, Days: 20}))
	assert.Equal(t, "due today", StatusText(task.Status{State: task.DueToday}))
	assert.Equal(t, "pending", StatusText(task.Status{State: task.NotApplicable}))
	assert.Equal(t, "done", StatusText(task.Status{State: task.Done}))
}

func TestRenderList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderList(&buf, Rows(listEntries(t), today, ListOptions{})))
	out := buf.String()

	for _, want := range []string{"FILE", "STATUS", "buy_milk.json", "Pay rent", "overdue 2 days", "2026-11-03", "scheduled", "normal"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Done thing")
	assert.True(t, strings.HasSuffix(out, "\n"))

	buf.Reset()
	require.NoError(t, RenderList(&buf, nil))
	assert.Equal(t, "No tasks.\n", buf.String())
}

func TestRenderDetails(t *testing.T) {
	tk := named(t, "Water plants").
		WithPriority(2).
		WithDue(task.MustParseDate("2026-10-20")).
		WithPreview(3).
		WithReschedule(task.Reschedule{Interval: 7, From: task.FromCompletionDate}).
		WithCompletion(task.MustParseDate("2026-10-13"))

	var buf bytes.Buffer
	require.NoError(t, RenderDetails(&buf, tk, today))
	out := buf.String()

	for _, want := range []string{
		"--- Current Task Details ---",
		"Name: Water plants",
		"Type: Scheduled",
		"Priority: 2",
		"Due Date: 2026-10-20",
		"Reschedules: Every 7 days",
		"Reschedule from: Completion date",
		"Preview: 3 days in advance",
		"History: 2026-10-13",
		"Status: in 6 days",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Next due")
}

func TestRenderDetailsRecurring(t *testing.T) {
	tk := named(t, "Backup").WithRecurring(task.Recurring{Completed: on(today.AddDays(-3)), Duration: 14})

	var buf bytes.Buffer
	require.NoError(t, RenderDetails(&buf, tk, today))
	out := buf.String()
	assert.Contains(t, out, "Type: Scheduled")
	assert.Contains(t, out, "Priority: 0")
	assert.Contains(t, out, "Recurs: Every 14 days")
	assert.Contains(t, out, "Last completed: "+today.AddDays(-3).String())
	assert.Contains(t, out, "Next due: "+today.AddDays(11).String())
}
