package model

import "github.com/google/uuid"

// Period selects the time window a moment listing covers.
type Period string

const (
	PeriodDay   Period = "Day"
	PeriodWeek  Period = "Week"
	PeriodMonth Period = "Month"
)

// Filter narrows a moment listing. The zero value (with Period set)
// matches everything in the period. Not persisted.
type Filter struct {
	Period    Period
	MemberIDs map[uuid.UUID]bool
	DeedIDs   map[uuid.UUID]bool
	Domain    *Domain
	Search    string
}

// Active reports whether any narrowing criterion is set beyond the period.
func (f Filter) Active() bool {
	return len(f.MemberIDs) > 0 || len(f.DeedIDs) > 0 || f.Domain != nil || f.Search != ""
}

// Clear drops every criterion but keeps the period.
func (f *Filter) Clear() {
	f.MemberIDs = nil
	f.DeedIDs = nil
	f.Domain = nil
	f.Search = ""
}
