// Package candidate defines the domain model for tracked job seekers.
// This package has no UI or transport dependencies and can be used by
// any frontend.
package candidate

import (
	"strings"
	"time"
)

// Workflow statuses. Status is free text in storage; these are the
// values the dashboard assigns and recognizes.
const (
	StatusPending       = "Pending"
	StatusContacted     = "Contacted"
	StatusFollowUp      = "Follow Up"
	StatusNotInterested = "Not Interested"
	StatusConverted     = "Converted"
)

// Option sets for the constrained free-text fields.
var (
	StreamOptions   = []string{"A", "B", "C"}
	LicenseOptions  = []string{"No", "G1", "G2", "Full G"}
	LocationOptions = []string{"Ajax", "Pickering", "Whitby", "Oshawa", "Other"}
)

// PayStubs holds the five ordinal pay-stub dates collected once a
// candidate is employed. All fields are optional.
type PayStubs struct {
	First  *time.Time `json:"firstPayStub,omitempty"`
	Second *time.Time `json:"secondPayStub,omitempty"`
	Third  *time.Time `json:"thirdPayStub,omitempty"`
	Fourth *time.Time `json:"fourthPayStub,omitempty"`
	Fifth  *time.Time `json:"fifthPayStub,omitempty"`
}

// Dates returns the stub dates in ordinal order. Nil receiver yields
// five nils, so callers can range without a guard.
func (p *PayStubs) Dates() []*time.Time {
	if p == nil {
		return make([]*time.Time, 5)
	}
	return []*time.Time{p.First, p.Second, p.Third, p.Fourth, p.Fifth}
}

// Candidate is the sole domain entity: a tracked job seeker with
// contact, scheduling, and status metadata.
//
// NextContact drives all date-based views. LastTouchDate and Status
// are maintained as side effects of ApplyNextContact and should not
// be set directly when the date changes.
type Candidate struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	CAMSNumber      string     `json:"camsNumber,omitempty"`
	EAPNumber       string     `json:"eapNumber,omitempty"`
	Stream          string     `json:"stream"`
	NeedsAssessment bool       `json:"needsAssessment"`
	AssessmentNotes string     `json:"assessmentNotes,omitempty"`
	License         string     `json:"license"`
	Location        string     `json:"location"`
	LastTouchDate   *time.Time `json:"lastTouchDate"`
	NextContact     *time.Time `json:"nextContact"`
	Status          string     `json:"status"`
	Category        string     `json:"category,omitempty"`
	Color           string     `json:"color,omitempty"`
	Notes           string     `json:"notes"`
	Archived        bool       `json:"archived,omitempty"`
	IsEmployed      bool       `json:"isEmployed"`
	PayStubs        *PayStubs  `json:"payStubs,omitempty"`

	// Extra carries ad-hoc columns attached during import that are not
	// part of the declared schema. Searched alongside declared fields.
	Extra map[string]string `json:"extra,omitempty"`
}

// IsPlaceholder reports whether the record carries no contact
// information at all. Placeholders stay in storage but are excluded
// from every view.
func (c Candidate) IsPlaceholder() bool {
	return strings.TrimSpace(c.Name) == "" &&
		strings.TrimSpace(c.Email) == "" &&
		strings.TrimSpace(c.Phone) == ""
}

// Clone returns a deep copy. The store hands out clones so callers
// cannot mutate shared state behind its back.
func (c Candidate) Clone() Candidate {
	out := c
	if c.LastTouchDate != nil {
		t := *c.LastTouchDate
		out.LastTouchDate = &t
	}
	if c.NextContact != nil {
		t := *c.NextContact
		out.NextContact = &t
	}
	if c.PayStubs != nil {
		p := *c.PayStubs
		for _, ptr := range []**time.Time{&p.First, &p.Second, &p.Third, &p.Fourth, &p.Fifth} {
			if *ptr != nil {
				t := **ptr
				*ptr = &t
			}
		}
		out.PayStubs = &p
	}
	if c.Extra != nil {
		out.Extra = make(map[string]string, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// StartOfDay truncates t to its local calendar-day boundary.
// Day-granularity comparisons use the local day, not UTC, to avoid
// off-by-one bucketing across timezones.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ApplyNextContact returns a copy of c with the next-contact date set
// and the dependent fields stamped: LastTouchDate becomes now, and
// Status becomes Pending when the date is on or before now's calendar
// day, Contacted when it is in the future. Passing nil clears the
// date but still records the touch.
func ApplyNextContact(c Candidate, date *time.Time, now time.Time) Candidate {
	out := c.Clone()
	touched := now
	out.LastTouchDate = &touched
	if date == nil {
		out.NextContact = nil
		return out
	}
	d := *date
	out.NextContact = &d
	if !StartOfDay(d).After(StartOfDay(now)) {
		out.Status = StatusPending
	} else {
		out.Status = StatusContacted
	}
	return out
}

// WithCategory returns a copy of c with the category set and the
// color kept consistent with the fixed category-color mapping. An
// unrecognized category clears the color.
func WithCategory(c Candidate, category string) Candidate {
	out := c.Clone()
	out.Category = category
	if color, ok := ColorOf(category); ok {
		out.Color = color
	} else {
		out.Color = ""
	}
	return out
}

// WithEmployment returns a copy of c with the employed flag set.
// Clearing employment drops pay-stub data, which is only meaningful
// while employed.
func WithEmployment(c Candidate, employed bool) Candidate {
	out := c.Clone()
	out.IsEmployed = employed
	if !employed {
		out.PayStubs = nil
	}
	return out
}
