package weave

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rowanvale/hearth/internal/model"
)

const exportDateFormat = "Jan 2, 2006"

// ExportText renders a summary as a human-readable plain-text report.
// Members resolve contribution names; an unresolvable member id is
// rendered as "Unknown".
func ExportText(summary model.WeeklySummary, members []model.Member) string {
	memberFor := func(id uuid.UUID) (model.Member, bool) {
		for _, m := range members {
			if m.ID == id {
				return m, true
			}
		}
		return model.Member{}, false
	}

	var lines []string
	lines = append(lines, "═══ Hearth ═══")
	lines = append(lines, "Weekly Summary")
	lines = append(lines, fmt.Sprintf("%s — %s",
		summary.WeekStart.Format(exportDateFormat),
		summary.WeekEnd.Format(exportDateFormat)))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Total moments: %d", summary.TotalMoments))

	if summary.TopDeed != "" {
		lines = append(lines, fmt.Sprintf("Most frequent: %s", summary.TopDeed))
	}

	lines = append(lines, "")
	lines = append(lines, "── Team Contributions ──")

	for _, c := range summary.Contributions {
		name := "Unknown"
		emoji := "❔"
		if m, ok := memberFor(c.MemberID); ok {
			name = m.Name
			emoji = m.Emoji
		}
		lines = append(lines, fmt.Sprintf("%s %s: %d moments (%.0f%%)", emoji, name, c.MomentCount, c.Percentage))
		if len(c.TopDeeds) > 0 {
			lines = append(lines, fmt.Sprintf("   Top: %s", strings.Join(c.TopDeeds, ", ")))
		}
	}

	if summary.Insight != "" {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("💡 %s", summary.Insight))
	}

	lines = append(lines, "")
	lines = append(lines, "Generated with Hearth")

	return strings.Join(lines, "\n")
}
