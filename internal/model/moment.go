package model

import (
	"time"

	"github.com/google/uuid"
)

// Moment is one occurrence of a member performing a deed. HappenedAt
// and LoggedAt may differ because backdating is allowed. DeedID and
// MemberID are not referentially enforced; consumers render unresolved
// references as "Unknown".
type Moment struct {
	ID            uuid.UUID  `json:"id"`
	DeedID        uuid.UUID  `json:"deed_id"`
	MemberID      uuid.UUID  `json:"member_id"`
	HappenedAt    time.Time  `json:"happened_at"`
	LoggedAt      time.Time  `json:"logged_at"`
	Note          string     `json:"note,omitempty"`
	HasGratitude  bool       `json:"has_gratitude"`
	GratitudeFrom *uuid.UUID `json:"gratitude_from,omitempty"`
}

// NewMoment creates a moment with a fresh id for the given occurrence
// and logging times.
func NewMoment(deedID, memberID uuid.UUID, happenedAt, loggedAt time.Time, note string) Moment {
	return Moment{
		ID:         uuid.New(),
		DeedID:     deedID,
		MemberID:   memberID,
		HappenedAt: happenedAt,
		LoggedAt:   loggedAt,
		Note:       note,
	}
}

// DayKey buckets a time into its local calendar day.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DayKey returns the calendar day the moment happened on.
func (m Moment) DayKey() string {
	return DayKey(m.HappenedAt)
}
