package model

import "time"

// Level is the household's gamification rank. Raw values are persisted.
type Level string

const (
	LevelSeedling    Level = "Seedling Nest"
	LevelSprout      Level = "Sprouting Home"
	LevelSapling     Level = "Sapling Circle"
	LevelBloom       Level = "Blooming Bond"
	LevelOak         Level = "Mighty Oak Clan"
	LevelAncientTree Level = "Ancient Tree"
)

// Levels lists every level in ascending threshold order.
func Levels() []Level {
	return []Level{LevelSeedling, LevelSprout, LevelSapling, LevelBloom, LevelOak, LevelAncientTree}
}

// SparksRequired is the total-point threshold at which the level is reached.
func (l Level) SparksRequired() int {
	switch l {
	case LevelSprout:
		return 50
	case LevelSapling:
		return 150
	case LevelBloom:
		return 400
	case LevelOak:
		return 800
	case LevelAncientTree:
		return 1500
	default:
		return 0
	}
}

func (l Level) Icon() string {
	switch l {
	case LevelSprout:
		return "🌿"
	case LevelSapling:
		return "🌳"
	case LevelBloom:
		return "🌸"
	case LevelOak:
		return "🏡"
	case LevelAncientTree:
		return "✨"
	default:
		return "🌱"
	}
}

// Next returns the level after l, or false at the top.
func (l Level) Next() (Level, bool) {
	all := Levels()
	for i, lv := range all {
		if lv == l && i+1 < len(all) {
			return all[i+1], true
		}
	}
	return l, false
}

// Ledger is the singleton gamification state: points, streak, level and
// unlocked badges. Invariants: CurrentStreak <= LongestStreak, and Level
// is always the highest level whose threshold is <= TotalSparks.
type Ledger struct {
	TotalSparks         int        `json:"total_sparks"`
	CurrentStreak       int        `json:"current_streak"`
	LongestStreak       int        `json:"longest_streak"`
	LastActiveDate      *time.Time `json:"last_active_date,omitempty"`
	Level               Level      `json:"level"`
	UnlockedBadges      []Badge    `json:"unlocked_badges"`
	WeeklySparkGoal     int        `json:"weekly_spark_goal"`
	WeeklySparksCurrent int        `json:"weekly_sparks_current"`
}

// DefaultLedger is the state of a fresh installation.
func DefaultLedger() Ledger {
	return Ledger{
		Level:           LevelSeedling,
		WeeklySparkGoal: 30,
	}
}

// HasBadge reports whether the badge id is already in the unlocked list.
func (l Ledger) HasBadge(id string) bool {
	for _, b := range l.UnlockedBadges {
		if b.ID == id {
			return true
		}
	}
	return false
}
