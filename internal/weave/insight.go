package weave

import (
	"sort"

	"github.com/rowanvale/hearth/internal/model"
)

const (
	insightFresh     = "A fresh week awaits — every small moment matters."
	insightSolo      = "Every moment logged is a step toward teamwork."
	insightBalanced  = "Great balance this week — the team is sharing the load well!"
	insightLeaned    = "One member carried a bit more — maybe check in on how to share?"
	insightRebalance = "The load leaned one way — a gentle conversation could help rebalance."
)

// Gap thresholds, in percentage points between the top two contributors.
const (
	balancedGap = 15
	leanedGap   = 35
)

// gentleInsight picks the narrative line for a week. Empty week: fresh
// start. Fewer than two members actually contributing: encouragement.
// Otherwise the top two contributors' percentage gap selects balanced,
// leaned or rebalance wording.
func gentleInsight(contributions []model.Contribution, total int) string {
	if total == 0 {
		return insightFresh
	}

	var active []model.Contribution
	for _, c := range contributions {
		if c.MomentCount > 0 {
			active = append(active, c)
		}
	}
	if len(active) < 2 {
		return insightSolo
	}

	sort.Slice(active, func(i, j int) bool {
		return active[i].Percentage > active[j].Percentage
	})

	gap := active[0].Percentage - active[1].Percentage
	switch {
	case gap < balancedGap:
		return insightBalanced
	case gap < leanedGap:
		return insightLeaned
	default:
		return insightRebalance
	}
}
