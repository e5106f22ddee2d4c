package model

import "time"

// Badge is an achievement definition. The catalog entries carry a nil
// UnlockedAt; the copy stored in the ledger's unlocked list carries the
// unlock time.
type Badge struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Icon       string     `json:"icon"`
	Desc       string     `json:"desc"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

func (b Badge) Unlocked() bool {
	return b.UnlockedAt != nil
}
