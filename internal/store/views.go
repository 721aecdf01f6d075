package store

// views.go derives the dashboard views. Every function here is pure:
// it takes a snapshot slice and returns a new slice, never touching
// the store, so the same inputs always give the same view and the
// functions compose in any order.

import (
	"sort"
	"strings"
	"time"

	"github.com/agilec-tools/touchpoint/internal/candidate"
)

// Sort keys accepted by SortBy.
const (
	SortNameAsc       = "name_asc"
	SortNameDesc      = "name_desc"
	SortLastTouchAsc  = "last_touch_asc"
	SortLastTouchDesc = "last_touch_desc"
	SortCategory      = "category"
)

// searchDateLayouts are the textual forms a date matches under search,
// so typing either "2025-03-07" or "Mar 7" finds the record.
var searchDateLayouts = []string{"2006-01-02", "Jan 2, 2006"}

// Visible drops placeholder records always and archived records unless
// showArchived is set. Idempotent.
func Visible(list []candidate.Candidate, showArchived bool) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(list))
	for _, c := range list {
		if c.IsPlaceholder() {
			continue
		}
		if c.Archived && !showArchived {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Search filters to records with any field containing query,
// case-insensitively. Declared string fields, formatted dates,
// booleans as Yes/No, and ad-hoc Extra columns all participate. An
// empty query matches everything.
func Search(list []candidate.Candidate, query string) []candidate.Candidate {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return list
	}
	out := make([]candidate.Candidate, 0, len(list))
	for _, c := range list {
		if matches(c, query) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c candidate.Candidate, query string) bool {
	fields := []string{
		c.Name, c.Email, c.Phone, c.CAMSNumber, c.EAPNumber,
		c.Stream, c.AssessmentNotes, c.License, c.Location,
		c.Status, c.Category, c.Color, c.Notes,
		yesNo(c.NeedsAssessment), yesNo(c.IsEmployed),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	for _, t := range []*time.Time{c.LastTouchDate, c.NextContact} {
		if dateMatches(t, query) {
			return true
		}
	}
	for _, t := range c.PayStubs.Dates() {
		if dateMatches(t, query) {
			return true
		}
	}
	for _, v := range c.Extra {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

func dateMatches(t *time.Time, query string) bool {
	if t == nil {
		return false
	}
	for _, layout := range searchDateLayouts {
		if strings.Contains(strings.ToLower(t.Format(layout)), query) {
			return true
		}
	}
	return false
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// DayBucket is one calendar day of the schedule view.
type DayBucket struct {
	Day        time.Time             `json:"day"`
	Candidates []candidate.Candidate `json:"candidates"`
}

// ScheduleView groups upcoming contacts by calendar day.
type ScheduleView struct {
	// Days holds exactly the requested number of consecutive day
	// buckets, ascending from the start day, empty buckets included.
	Days []DayBucket `json:"days"`
	// PastDue collects records whose next contact day precedes the
	// start day.
	PastDue []candidate.Candidate `json:"pastDue"`
}

// Schedule buckets records by next-contact day over `days` consecutive
// days starting at start's local calendar day. Records without a next
// contact appear nowhere; earlier days land in PastDue.
func Schedule(list []candidate.Candidate, start time.Time, days int) ScheduleView {
	if days < 1 {
		days = 1
	}
	first := candidate.StartOfDay(start)

	view := ScheduleView{Days: make([]DayBucket, days)}
	// Bucketing keys off the formatted calendar day, never instants:
	// duration division misbuckets across DST transitions, and instant
	// comparison misfiles dates whose zone differs from start's (a UTC
	// midnight "today" precedes a west-of-UTC local midnight).
	firstKey := first.Format("2006-01-02")
	bucketIdx := make(map[string]int, days)
	for i := range view.Days {
		day := first.AddDate(0, 0, i)
		view.Days[i] = DayBucket{Day: day, Candidates: []candidate.Candidate{}}
		bucketIdx[day.Format("2006-01-02")] = i
	}
	for _, c := range list {
		if c.NextContact == nil {
			continue
		}
		key := candidate.StartOfDay(*c.NextContact).Format("2006-01-02")
		if key < firstKey {
			view.PastDue = append(view.PastDue, c)
			continue
		}
		if i, ok := bucketIdx[key]; ok {
			view.Days[i].Candidates = append(view.Days[i].Candidates, c)
		}
	}
	return view
}

// OnDay filters to records whose next contact falls on the same local
// calendar day as day.
func OnDay(list []candidate.Candidate, day time.Time) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(list))
	for _, c := range list {
		if c.NextContact != nil && candidate.SameDay(*c.NextContact, day) {
			out = append(out, c)
		}
	}
	return out
}

// SortBy returns a sorted copy of the list. Sorting is stable, so
// records that compare equal keep their snapshot order. Unknown keys
// return the list unchanged.
func SortBy(list []candidate.Candidate, key string) []candidate.Candidate {
	out := make([]candidate.Candidate, len(list))
	copy(out, list)
	switch key {
	case SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name)
		})
	case SortLastTouchAsc:
		// Never-contacted records surface first so they get attention.
		sort.SliceStable(out, func(i, j int) bool {
			return lessTouch(out[i].LastTouchDate, out[j].LastTouchDate)
		})
	case SortLastTouchDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return lessTouch(out[j].LastTouchDate, out[i].LastTouchDate)
		})
	case SortCategory:
		sort.SliceStable(out, func(i, j int) bool {
			return candidate.CategoryRank(out[i].Category) < candidate.CategoryRank(out[j].Category)
		})
	}
	return out
}

// lessTouch orders nil before any date, then by time.
func lessTouch(a, b *time.Time) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return a.Before(*b)
	}
}
