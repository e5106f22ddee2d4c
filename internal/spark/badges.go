package spark

import (
	"time"

	"github.com/google/uuid"
	"github.com/rowanvale/hearth/internal/model"
)

// Badge ids. These are persisted in the ledger's unlocked list and must
// stay stable.
const (
	BadgeFirstEmber    = "first_ember"
	BadgeTeamSpirit    = "team_spirit"
	BadgeWeekWarrior   = "week_warrior"
	BadgeGratefulHeart = "grateful_heart"
	BadgeCenturyMark   = "century_mark"
	BadgeNightOwl      = "night_owl"
	BadgeEarlyBird     = "early_bird"
	BadgeAllHands      = "all_hands"
	BadgeBondBlaze     = "bond_blaze"
	BadgeMightyOak     = "mighty_oak"
)

var catalog = []model.Badge{
	{ID: BadgeFirstEmber, Title: "First Ember", Icon: "🔥", Desc: "Logged your very first moment"},
	{ID: BadgeTeamSpirit, Title: "Team Spirit", Icon: "🤝", Desc: "Two family members logged on the same day"},
	{ID: BadgeWeekWarrior, Title: "Week Warrior", Icon: "⚔️", Desc: "Logged at least one moment every day for a week"},
	{ID: BadgeGratefulHeart, Title: "Grateful Heart", Icon: "💛", Desc: "Sent your first gratitude spark"},
	{ID: BadgeCenturyMark, Title: "Century Mark", Icon: "💯", Desc: "Reached 100 total moments"},
	{ID: BadgeNightOwl, Title: "Night Owl", Icon: "🦉", Desc: "Logged a moment after midnight"},
	{ID: BadgeEarlyBird, Title: "Early Bird", Icon: "🐦", Desc: "Logged a moment before 6 AM"},
	{ID: BadgeAllHands, Title: "All Hands", Icon: "🙌", Desc: "Every family member contributed this week"},
	{ID: BadgeBondBlaze, Title: "Bond Blaze", Icon: "🌟", Desc: "Reached a 14-day streak"},
	{ID: BadgeMightyOak, Title: "Mighty Oak", Icon: "🏡", Desc: "Reached the Mighty Oak clan level"},
}

// Catalog returns the full badge catalog in display order. The returned
// slice is a copy; entries carry no unlock time.
func Catalog() []model.Badge {
	out := make([]model.Badge, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogBadge looks up a catalog entry by id.
func CatalogBadge(id string) (model.Badge, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return model.Badge{}, false
}

// CheckMoment evaluates every badge condition that can fire after a
// moment is recorded and unlocks the ones newly met. All conditions are
// checked in one pass, so a single moment can unlock several badges.
// Already-unlocked badges are never re-evaluated. Returns the ids
// unlocked by this call.
//
// dayMoments must hold every moment on the recorded moment's calendar
// day (including it); totalMoments is the all-time count after the
// append.
func CheckMoment(l *model.Ledger, m model.Moment, dayMoments []model.Moment, totalMoments int, now time.Time) []string {
	var unlocked []string

	if totalMoments >= 1 {
		unlocked = unlock(l, BadgeFirstEmber, now, unlocked)
	}
	if totalMoments >= 100 {
		unlocked = unlock(l, BadgeCenturyMark, now, unlocked)
	}

	hour := m.HappenedAt.Hour()
	if hour >= 0 && hour < 5 {
		unlocked = unlock(l, BadgeNightOwl, now, unlocked)
	}
	if hour >= 5 && hour < 6 {
		unlocked = unlock(l, BadgeEarlyBird, now, unlocked)
	}

	if !l.HasBadge(BadgeTeamSpirit) {
		kin := make(map[uuid.UUID]bool)
		for _, dm := range dayMoments {
			kin[dm.MemberID] = true
		}
		if len(kin) >= 2 {
			unlocked = unlock(l, BadgeTeamSpirit, now, unlocked)
		}
	}

	if l.CurrentStreak >= 7 {
		unlocked = unlock(l, BadgeWeekWarrior, now, unlocked)
	}
	if l.CurrentStreak >= 14 {
		unlocked = unlock(l, BadgeBondBlaze, now, unlocked)
	}

	if l.Level == model.LevelOak {
		unlocked = unlock(l, BadgeMightyOak, now, unlocked)
	}

	return unlocked
}

// CheckGratitude unlocks the gratitude badge the first time thanks are
// given. Returns the ids unlocked by this call.
func CheckGratitude(l *model.Ledger, now time.Time) []string {
	return unlock(l, BadgeGratefulHeart, now, nil)
}

// unlock appends the badge to the ledger's unlocked list unless it is
// already there. The unlock time is recorded once and never changes.
func unlock(l *model.Ledger, id string, now time.Time, acc []string) []string {
	if l.HasBadge(id) {
		return acc
	}
	b, ok := CatalogBadge(id)
	if !ok {
		return acc
	}
	at := now
	b.UnlockedAt = &at
	l.UnlockedBadges = append(l.UnlockedBadges, b)
	return append(acc, id)
}
