// Package weave builds the weekly contribution summary and its gentle
// insight narrative. Everything here is a pure function of its inputs;
// re-running over the same snapshot yields the same report.
package weave

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rowanvale/hearth/internal/model"
)

const topDeedCount = 3

// WeekRange returns the half-open interval [start, end) of the week
// containing ref, at midnight local boundaries.
func WeekRange(ref time.Time, startsMonday bool) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	offset := int(day.Weekday()) // Sunday = 0
	if startsMonday {
		offset = (offset + 6) % 7
	}
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// Build computes the summary for the week containing ref. Moments may be
// the full event log; the window is filtered here. Contributions cover
// every active member, including those with zero moments. Deed-count
// ties are broken by first occurrence in the scanned moments, which is
// stable for a given snapshot.
func Build(ref time.Time, startsMonday bool, moments []model.Moment, activeMembers []model.Member, deeds []model.Deed) model.WeeklySummary {
	start, end := WeekRange(ref, startsMonday)

	var week []model.Moment
	for _, m := range moments {
		if !m.HappenedAt.Before(start) && m.HappenedAt.Before(end) {
			week = append(week, m)
		}
	}
	total := len(week)

	deedName := func(id uuid.UUID) (string, bool) {
		for _, d := range deeds {
			if d.ID == id {
				return d.Name, true
			}
		}
		return "", false
	}

	contributions := make([]model.Contribution, 0, len(activeMembers))
	for _, member := range activeMembers {
		var own []model.Moment
		for _, m := range week {
			if m.MemberID == member.ID {
				own = append(own, m)
			}
		}

		pct := 0.0
		if total > 0 {
			pct = float64(len(own)) / float64(total) * 100
		}

		var top []string
		for _, id := range topDeedIDs(own, topDeedCount) {
			if name, ok := deedName(id); ok {
				top = append(top, name)
			}
		}

		contributions = append(contributions, model.Contribution{
			MemberID:    member.ID,
			MomentCount: len(own),
			Percentage:  pct,
			TopDeeds:    top,
		})
	}

	topDeed := ""
	if ids := topDeedIDs(week, 1); len(ids) > 0 {
		if name, ok := deedName(ids[0]); ok {
			topDeed = name
		}
	}

	return model.WeeklySummary{
		WeekStart:     start,
		WeekEnd:       start.AddDate(0, 0, 6),
		TotalMoments:  total,
		Contributions: contributions,
		TopDeed:       topDeed,
		Insight:       gentleInsight(contributions, total),
	}
}

// topDeedIDs ranks the deed ids appearing in moments by count
// descending, ties by first occurrence, and returns up to limit of them.
func topDeedIDs(moments []model.Moment, limit int) []uuid.UUID {
	type bucket struct {
		id    uuid.UUID
		count int
		first int
	}

	index := make(map[uuid.UUID]int)
	var buckets []bucket
	for i, m := range moments {
		if at, ok := index[m.DeedID]; ok {
			buckets[at].count++
			continue
		}
		index[m.DeedID] = len(buckets)
		buckets = append(buckets, bucket{id: m.DeedID, count: 1, first: i})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].first < buckets[j].first
	})

	if len(buckets) > limit {
		buckets = buckets[:limit]
	}
	ids := make([]uuid.UUID, 0, len(buckets))
	for _, b := range buckets {
		ids = append(ids, b.id)
	}
	return ids
}
