package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilec-tools/touchpoint/internal/candidate"
)

func dptr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestVisible(t *testing.T) {
	list := []candidate.Candidate{
		{ID: "1", Name: "Ada"},
		{ID: "2", Name: "Grace", Archived: true},
		{ID: "3"}, // placeholder, no contact info
		{ID: "4", Phone: "905-555-0101", Archived: true},
	}

	got := Visible(list, false)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	withArchived := Visible(list, true)
	require.Len(t, withArchived, 3)

	// Placeholders stay hidden even when archived records are shown.
	for _, c := range withArchived {
		assert.NotEqual(t, "3", c.ID)
	}
}

func TestVisible_Idempotent(t *testing.T) {
	list := []candidate.Candidate{
		{ID: "1", Name: "Ada"},
		{ID: "2", Name: "Grace", Archived: true},
		{ID: "3"},
	}

	once := Visible(list, false)
	twice := Visible(once, false)
	assert.Equal(t, once, twice)
}

func TestSearch(t *testing.T) {
	list := []candidate.Candidate{
		{ID: "1", Name: "Ada Lovelace", Email: "ada@example.com", Notes: "prefers mornings"},
		{ID: "2", Name: "Grace Hopper", NextContact: dptr(2026, time.March, 7)},
		{ID: "3", Name: "Alan Turing", IsEmployed: true},
		{ID: "4", Name: "Joan Clarke", Extra: map[string]string{"Referral": "walk-in client"}},
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"empty matches all", "", []string{"1", "2", "3", "4"}},
		{"name case-insensitive", "lovelace", []string{"1"}},
		{"email", "ada@", []string{"1"}},
		{"notes", "mornings", []string{"1"}},
		{"iso date", "2026-03-07", []string{"2"}},
		{"pretty date", "mar 7", []string{"2"}},
		{"employed as yes", "yes", []string{"3"}},
		{"extra column", "walk-in", []string{"4"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(list, tt.query)
			ids := make([]string, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearch_Monotonic(t *testing.T) {
	// Narrowing the query never grows the result set.
	list := []candidate.Candidate{
		{ID: "1", Name: "Ada Lovelace"},
		{ID: "2", Name: "Adam West"},
		{ID: "3", Name: "Grace Hopper"},
	}

	broad := Search(list, "ad")
	narrow := Search(list, "ada ")
	assert.LessOrEqual(t, len(narrow), len(broad))

	// Every narrow result is also a broad result.
	broadIDs := map[string]bool{}
	for _, c := range broad {
		broadIDs[c.ID] = true
	}
	for _, c := range narrow {
		assert.True(t, broadIDs[c.ID], "narrow hit %s missing from broad results", c.ID)
	}
}

func TestSchedule(t *testing.T) {
	start := date(2026, time.March, 10)
	list := []candidate.Candidate{
		{ID: "past", Name: "P", NextContact: dptr(2026, time.March, 8)},
		{ID: "today", Name: "T", NextContact: dptr(2026, time.March, 10)},
		{ID: "midweek", Name: "M", NextContact: dptr(2026, time.March, 12)},
		{ID: "lastday", Name: "L", NextContact: dptr(2026, time.March, 16)},
		{ID: "beyond", Name: "B", NextContact: dptr(2026, time.March, 17)},
		{ID: "undated", Name: "U"},
	}

	view := Schedule(list, start, 7)

	require.Len(t, view.Days, 7, "must have exactly the requested bucket count")
	for i, bucket := range view.Days {
		assert.Equal(t, start.AddDate(0, 0, i), bucket.Day, "bucket %d day", i)
		assert.NotNil(t, bucket.Candidates, "bucket %d must not be nil", i)
	}

	assert.Len(t, view.PastDue, 1)
	assert.Equal(t, "past", view.PastDue[0].ID)

	assert.Len(t, view.Days[0].Candidates, 1)
	assert.Equal(t, "today", view.Days[0].Candidates[0].ID)
	assert.Len(t, view.Days[2].Candidates, 1)
	assert.Equal(t, "midweek", view.Days[2].Candidates[0].ID)
	assert.Len(t, view.Days[6].Candidates, 1)
	assert.Equal(t, "lastday", view.Days[6].Candidates[0].ID)

	// Out-of-range and undated records appear nowhere.
	total := len(view.PastDue)
	for _, b := range view.Days {
		total += len(b.Candidates)
	}
	assert.Equal(t, 4, total)
}

func TestSchedule_BucketsByCalendarDayAcrossZones(t *testing.T) {
	// Imported sheets can carry UTC midnights while the dashboard
	// clock runs west of UTC. Bucketing must compare calendar days: a
	// record due today belongs in the first bucket, never in PastDue.
	est := time.FixedZone("EST", -5*60*60)
	start := time.Date(2026, time.March, 10, 10, 0, 0, 0, est)

	dueToday := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	overdue := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	list := []candidate.Candidate{
		{ID: "today", Name: "T", NextContact: &dueToday},
		{ID: "overdue", Name: "O", NextContact: &overdue},
	}

	view := Schedule(list, start, 7)

	require.Len(t, view.PastDue, 1)
	assert.Equal(t, "overdue", view.PastDue[0].ID)

	require.Len(t, view.Days[0].Candidates, 1)
	assert.Equal(t, "today", view.Days[0].Candidates[0].ID)
}

func TestOnDay(t *testing.T) {
	list := []candidate.Candidate{
		{ID: "1", Name: "A", NextContact: dptr(2026, time.March, 10)},
		{ID: "2", Name: "B", NextContact: dptr(2026, time.March, 11)},
		{ID: "3", Name: "C"},
	}

	got := OnDay(list, time.Date(2026, time.March, 10, 18, 30, 0, 0, time.Local))
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestSortBy(t *testing.T) {
	list := []candidate.Candidate{
		{ID: "1", Name: "grace", LastTouchDate: dptr(2026, time.February, 1), Category: candidate.CategoryBJO},
		{ID: "2", Name: "Ada", Category: candidate.CategoryActive},
		{ID: "3", Name: "Joan", LastTouchDate: dptr(2026, time.January, 1), Category: candidate.CategoryGotJob},
	}

	byName := SortBy(list, SortNameAsc)
	assert.Equal(t, []string{"2", "1", "3"}, idsOf(byName))

	byNameDesc := SortBy(list, SortNameDesc)
	assert.Equal(t, []string{"3", "1", "2"}, idsOf(byNameDesc))

	// Ascending: never-contacted first.
	byTouch := SortBy(list, SortLastTouchAsc)
	assert.Equal(t, []string{"2", "3", "1"}, idsOf(byTouch))

	// Descending: most recent first, never-contacted last.
	byTouchDesc := SortBy(list, SortLastTouchDesc)
	assert.Equal(t, []string{"1", "3", "2"}, idsOf(byTouchDesc))

	byCategory := SortBy(list, SortCategory)
	assert.Equal(t, []string{"2", "3", "1"}, idsOf(byCategory))

	// Unknown key leaves order untouched.
	assert.Equal(t, idsOf(list), idsOf(SortBy(list, "bogus")))
}

func TestSortBy_Stable(t *testing.T) {
	list := []candidate.Candidate{
		{ID: "1", Name: "Ada", Category: candidate.CategoryActive},
		{ID: "2", Name: "Ada", Category: candidate.CategoryActive},
		{ID: "3", Name: "Ada", Category: candidate.CategoryActive},
	}

	sorted := SortBy(list, SortNameAsc)
	assert.Equal(t, []string{"1", "2", "3"}, idsOf(sorted), "equal keys must keep input order")

	byCat := SortBy(list, SortCategory)
	assert.Equal(t, []string{"1", "2", "3"}, idsOf(byCat))
}

func TestSortBy_DoesNotMutateInput(t *testing.T) {
	list := []candidate.Candidate{
		{ID: "b", Name: "B"},
		{ID: "a", Name: "A"},
	}
	SortBy(list, SortNameAsc)
	assert.Equal(t, []string{"b", "a"}, idsOf(list))
}

func idsOf(list []candidate.Candidate) []string {
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	return ids
}
