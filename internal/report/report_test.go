package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/tickler/internal/store"
	"github.com/nibzard/tickler/internal/task"
)

var today = task.MustParseDate("2026-10-14")

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(t.TempDir())
	require.NoError(t, err)
	return s
}

func save(t *testing.T, s *store.Store, tk task.Task) {
	t.Helper()
	_, err := s.Create(tk)
	require.NoError(t, err)
}

func named(t *testing.T, name string) task.Task {
	t.Helper()
	tk, err := task.New(name)
	require.NoError(t, err)
	return tk
}

func on(d task.Date) *task.Date { return &d }

// seed mirrors a small but complete tasks directory.
func seed(t *testing.T) *store.Store {
	t.Helper()
	s := newStore(t)
	save(t, s, named(t, "Normal Report Task"))
	save(t, s, named(t, "Completed Normal Task").WithCompletion(task.MustParseDate("2025-01-01")))
	save(t, s, named(t, "Due Today Task").WithDue(today))
	save(t, s, named(t, "Overdue Task").WithDue(today.AddDays(-8)))
	save(t, s, named(t, "Upcoming Task").WithDue(today.AddDays(3)).WithPreview(5))
	save(t, s, named(t, "Future Task").WithDue(today.AddDays(10)).WithPreview(5))
	save(t, s, named(t, "Recurring Overdue").WithRecurring(task.Recurring{Completed: on(today.AddDays(-19)), Duration: 14}))
	save(t, s, named(t, "Recurring Upcoming No Preview").WithRecurring(task.Recurring{Completed: on(today.AddDays(-5)), Duration: 7}))
	return s
}

func render(t *testing.T, r *Report) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r))
	return buf.String()
}

func TestReportContents(t *testing.T) {
	r, err := Generate(seed(t), today)
	require.NoError(t, err)
	out := render(t, r)

	assert.Contains(t, out, "Normal Report Task")
	assert.Contains(t, out, "Due Today Task")
	assert.Contains(t, out, "Overdue Task (was due 8 days ago)")
	assert.Contains(t, out, "Upcoming Task (due in 3 days)")
	assert.Contains(t, out, "Recurring Overdue (was due 5 days ago)")

	assert.NotContains(t, out, "Future Task")
	assert.NotContains(t, out, "Recurring Upcoming No Preview")
	assert.NotContains(t, out, "Completed Normal Task")
	assert.NotContains(t, out, InvalidBanner)
}

func TestReportRecurringWithPreview(t *testing.T) {
	s := seed(t)
	save(t, s, named(t, "Recurring With Preview").
		WithRecurring(task.Recurring{Completed: on(today.AddDays(-5)), Duration: 7}).
		WithPreview(5))

	r, err := Generate(s, today)
	require.NoError(t, err)
	assert.Contains(t, render(t, r), "Recurring With Preview (due in 2 days)")
}

func TestReportListsInvalidFiles(t *testing.T) {
	s := seed(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "malformed.json"), []byte(`{"name": "Malformed Task"`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "non-conforming.json"), []byte(`["badroot"]`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "bad-date.yaml"), []byte("name: Bad date\ndue: 2026-02-30\n"), 0644))

	r, err := Generate(s, today)
	require.NoError(t, err)
	assert.Equal(t, []string{"bad-date.yaml", "malformed.json", "non-conforming.json"}, r.Invalid)

	out := render(t, r)
	assert.Contains(t, out, InvalidBanner)
	assert.Contains(t, out, "- malformed.json")
	assert.Contains(t, out, "- non-conforming.json")
	assert.Contains(t, out, "- bad-date.yaml")
	assert.NotContains(t, out, "Malformed Task")

	// The rest of the report is unaffected.
	assert.Contains(t, out, "Overdue Task (was due 8 days ago)")
}

func TestReportIsDeterministic(t *testing.T) {
	s := seed(t)
	first, err := Generate(s, today)
	require.NoError(t, err)
	second, err := Generate(s, today)
	require.NoError(t, err)
	assert.Equal(t, render(t, first), render(t, second))
}

func TestReportDependsOnlyOnReferenceDate(t *testing.T) {
	s := seed(t)
	r, err := Generate(s, today.AddDays(8))
	require.NoError(t, err)
	out := render(t, r)
	assert.Contains(t, out, "Overdue Task (was due 16 days ago)")
	assert.Contains(t, out, "Future Task (due in 2 days)")
	assert.Contains(t, out, "Due Today Task (was due 8 days ago)")
}

func TestBuildOrdering(t *testing.T) {
	entries := []store.Entry{
		{Path: "b.json", Task: named(t, "B late").WithDue(today.AddDays(-2))},
		{Path: "a.json", Task: named(t, "A late").WithDue(today.AddDays(-2))},
		{Path: "c.json", Task: named(t, "Very late").WithDue(today.AddDays(-30))},
		{Path: "d.json", Task: named(t, "zeta").WithDue(today)},
		{Path: "e.json", Task: named(t, "Alpha").WithDue(today)},
		{Path: "m.json", Task: named(t, "alice").WithDue(today)},
		{Path: "n.json", Task: named(t, "Bob").WithDue(today)},
		{Path: "f.json", Task: named(t, "Soon").WithDue(today.AddDays(1)).WithPreview(3)},
		{Path: "g.json", Task: named(t, "Later").WithDue(today.AddDays(3)).WithPreview(3)},
		{Path: "h.json", Task: named(t, "Also soon").WithDue(today.AddDays(1)).WithPreview(1)},
		{Path: "i.json", Task: named(t, "Low")},
		{Path: "j.json", Task: named(t, "High").WithPriority(5)},
		{Path: "k.json", Task: named(t, "Also low").WithPriority(0)},
		{Path: "l.json", Task: named(t, "Undated").WithRecurring(task.Recurring{Duration: 3})},
	}
	failures := []store.Failure{
		{Path: "/x/zz.json", Err: errors.New("bad")},
		{Path: "/x/aa.json", Err: errors.New("bad")},
	}

	r := Build(entries, failures, today)

	names := func(items []Item) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Name
		}
		return out
	}
	assert.Equal(t, []string{"Very late", "A late", "B late"}, names(r.Overdue))
	assert.Equal(t, []string{"Alpha", "Bob", "alice", "zeta"}, names(r.DueToday))
	assert.Equal(t, []string{"Also soon", "Soon", "Later"}, names(r.Upcoming))
	assert.Equal(t, []string{"High", "Also low", "Low"}, names(r.Tasks))
	assert.Equal(t, []string{"aa.json", "zz.json"}, r.Invalid)
	assert.Equal(t, 30, r.Overdue[0].Days)
}

func TestRenderSectionsAndSingularDay(t *testing.T) {
	r := Build([]store.Entry{
		{Path: "a.json", Task: named(t, "Yesterday").WithDue(today.AddDays(-1))},
		{Path: "b.json", Task: named(t, "Tomorrow").WithDue(today.AddDays(1)).WithPreview(2)},
	}, nil, today)

	out := render(t, r)
	assert.Contains(t, out, "Yesterday (was due 1 day ago)")
	assert.Contains(t, out, "Tomorrow (due in 1 day)")
	assert.Less(t, strings.Index(out, "Overdue"), strings.Index(out, "Upcoming"))
	assert.NotContains(t, out, "Due Today\n")
	assert.NotContains(t, out, "\x1b[", "non-terminal output must be plain text")
}

func TestRenderEmpty(t *testing.T) {
	r := Build(nil, nil, today)
	assert.True(t, r.Empty())
	out := render(t, r)
	assert.Contains(t, out, "Tickler report for 2026-10-14")
	assert.Contains(t, out, "Nothing needs attention.")
}

func TestBuildRecordsMigratedFiles(t *testing.T) {
	r := Build([]store.Entry{
		{Path: "/t/old.json", Task: named(t, "Old"), Migrated: true},
		{Path: "/t/new.json", Task: named(t, "New")},
	}, nil, today)
	assert.Equal(t, []string{"old.json"}, r.Migrated)
}

type failingSource struct{}

func (failingSource) LoadAll() ([]store.Entry, []store.Failure, error) {
	return nil, nil, errors.New("disk on fire")
}

func TestGeneratePropagatesDiscoveryError(t *testing.T) {
	_, err := Generate(failingSource{}, today)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}
