// Package spark implements the gamification engine: points, streaks,
// levels and badge unlocks. Every function takes the current time
// explicitly so callers control the clock.
package spark

import (
	"time"

	"github.com/rowanvale/hearth/internal/model"
)

// Award applies the point and streak effects of one newly recorded
// moment to the ledger. Points always accrue, even for backdated
// moments; the streak advances only when the moment happened today,
// and at most once per calendar day.
func Award(l *model.Ledger, happenedAt, now time.Time) {
	l.TotalSparks++
	l.WeeklySparksCurrent++
	advanceStreak(l, happenedAt, now)
	l.Level = LevelFor(l.TotalSparks)
}

func advanceStreak(l *model.Ledger, happenedAt, now time.Time) {
	if model.DayKey(happenedAt) != model.DayKey(now) {
		return
	}

	switch {
	case l.LastActiveDate == nil:
		l.CurrentStreak = 1
	case isYesterday(*l.LastActiveDate, now):
		l.CurrentStreak++
	case !sameDay(*l.LastActiveDate, now):
		l.CurrentStreak = 1
	}
	// Same-day repeat: streak unchanged.

	active := now
	l.LastActiveDate = &active
	if l.CurrentStreak > l.LongestStreak {
		l.LongestStreak = l.CurrentStreak
	}
}

// LevelFor returns the highest level whose threshold is at or below the
// given point total. Idempotent; depends on nothing but totalSparks.
func LevelFor(totalSparks int) model.Level {
	levels := model.Levels()
	for i := len(levels) - 1; i >= 0; i-- {
		if totalSparks >= levels[i].SparksRequired() {
			return levels[i]
		}
	}
	return levels[0]
}

func sameDay(a, b time.Time) bool {
	return model.DayKey(a) == model.DayKey(b)
}

func isYesterday(t, now time.Time) bool {
	return model.DayKey(t) == model.DayKey(now.AddDate(0, 0, -1))
}
