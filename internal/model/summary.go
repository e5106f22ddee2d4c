package model

import (
	"time"

	"github.com/google/uuid"
)

// Contribution is one member's share of a weekly summary.
type Contribution struct {
	MemberID    uuid.UUID `json:"member_id"`
	MomentCount int       `json:"moment_count"`
	Percentage  float64   `json:"percentage"`
	TopDeeds    []string  `json:"top_deeds"`
}

// WeeklySummary is a derived report over one week of moments. It is
// computed on demand and never persisted. WeekEnd is the last day of
// the window, inclusive.
type WeeklySummary struct {
	WeekStart     time.Time      `json:"week_start"`
	WeekEnd       time.Time      `json:"week_end"`
	TotalMoments  int            `json:"total_moments"`
	Contributions []Contribution `json:"contributions"`
	TopDeed       string         `json:"top_deed,omitempty"`
	Insight       string         `json:"insight,omitempty"`
}
