package vault

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rowanvale/hearth/internal/model"
	"github.com/rowanvale/hearth/internal/weave"
)

// ActiveDeeds returns the non-archived deeds sorted by sort order.
func (v *Vault) ActiveDeeds() []model.Deed {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var out []model.Deed
	for _, d := range v.deeds {
		if !d.Archived {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// MomentsForToday returns today's moments, newest first.
func (v *Vault) MomentsForToday() []model.Moment {
	return v.MomentsForDay(v.now())
}

// MomentsForDay returns the moments on the given calendar day, newest first.
func (v *Vault) MomentsForDay(date time.Time) []model.Moment {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return sortNewestFirst(momentsOnDay(v.moments, date))
}

// MomentsForWeek returns the moments in the week containing date, per
// the configured week start, newest first.
func (v *Vault) MomentsForWeek(date time.Time) []model.Moment {
	v.mu.RLock()
	defer v.mu.RUnlock()
	start, end := weave.WeekRange(date, v.prefs.WeekStartsOnMonday)
	return sortNewestFirst(momentsInRange(v.moments, start, end))
}

// MomentsForMonth returns the moments in the calendar month containing
// date, newest first.
func (v *Vault) MomentsForMonth(date time.Time) []model.Moment {
	v.mu.RLock()
	defer v.mu.RUnlock()
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 1, 0)
	return sortNewestFirst(momentsInRange(v.moments, start, end))
}

// FilteredMoments applies a filter over the period window containing ref.
func (v *Vault) FilteredMoments(f model.Filter, ref time.Time) []model.Moment {
	var window []model.Moment
	switch f.Period {
	case model.PeriodWeek:
		window = v.MomentsForWeek(ref)
	case model.PeriodMonth:
		window = v.MomentsForMonth(ref)
	default:
		window = v.MomentsForDay(ref)
	}
	if !f.Active() {
		return window
	}

	v.mu.RLock()
	deedByID := make(map[uuid.UUID]model.Deed, len(v.deeds))
	for _, d := range v.deeds {
		deedByID[d.ID] = d
	}
	v.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(f.Search))
	var out []model.Moment
	for _, m := range window {
		if len(f.MemberIDs) > 0 && !f.MemberIDs[m.MemberID] {
			continue
		}
		if len(f.DeedIDs) > 0 && !f.DeedIDs[m.DeedID] {
			continue
		}
		deed, known := deedByID[m.DeedID]
		if f.Domain != nil && (!known || deed.Domain != *f.Domain) {
			continue
		}
		if query != "" {
			inNote := strings.Contains(strings.ToLower(m.Note), query)
			inDeed := known && strings.Contains(strings.ToLower(deed.Name), query)
			if !inNote && !inDeed {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// TodayCountForDeed counts how many times a deed was logged today.
func (v *Vault) TodayCountForDeed(deedID uuid.UUID) int {
	count := 0
	for _, m := range v.MomentsForToday() {
		if m.DeedID == deedID {
			count++
		}
	}
	return count
}

// --- Statistics ---

// TotalMoments is the all-time moment count.
func (v *Vault) TotalMoments() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.moments)
}

// TotalGratitudes counts moments that currently carry thanks.
func (v *Vault) TotalGratitudes() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	count := 0
	for _, m := range v.moments {
		if m.HasGratitude {
			count++
		}
	}
	return count
}

// MostActiveDeed returns the deed with the most moments all-time, or
// nil when nothing resolvable has been logged.
func (v *Vault) MostActiveDeed() *model.Deed {
	v.mu.RLock()
	defer v.mu.RUnlock()

	counts := make(map[uuid.UUID]int)
	for _, m := range v.moments {
		counts[m.DeedID]++
	}

	best := -1
	var bestID uuid.UUID
	for _, m := range v.moments {
		if c := counts[m.DeedID]; c > best {
			best = c
			bestID = m.DeedID
		}
	}
	if best < 0 {
		return nil
	}
	for _, d := range v.deeds {
		if d.ID == bestID {
			deed := d
			return &deed
		}
	}
	return nil
}

// --- Weekly summary ---

// BuildWeeklySummary computes the derived report for the week
// containing date. Nothing is persisted.
func (v *Vault) BuildWeeklySummary(date time.Time) model.WeeklySummary {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return weave.Build(date, v.prefs.WeekStartsOnMonday, v.moments, activeMembersLocked(v.members), v.deeds)
}

// ExportWeeklySummary renders the week's report as plain text.
func (v *Vault) ExportWeeklySummary(date time.Time) string {
	summary := v.BuildWeeklySummary(date)
	return weave.ExportText(summary, v.Members())
}

// --- helpers ---

func momentsOnDay(moments []model.Moment, date time.Time) []model.Moment {
	key := model.DayKey(date)
	var out []model.Moment
	for _, m := range moments {
		if m.DayKey() == key {
			out = append(out, m)
		}
	}
	return out
}

func momentsInRange(moments []model.Moment, start, end time.Time) []model.Moment {
	var out []model.Moment
	for _, m := range moments {
		if !m.HappenedAt.Before(start) && m.HappenedAt.Before(end) {
			out = append(out, m)
		}
	}
	return out
}

func sortNewestFirst(moments []model.Moment) []model.Moment {
	sort.SliceStable(moments, func(i, j int) bool {
		return moments[i].HappenedAt.After(moments[j].HappenedAt)
	})
	return moments
}
