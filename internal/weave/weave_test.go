package weave

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rowanvale/hearth/internal/model"
)

func member(name string) model.Member {
	return model.Member{ID: uuid.New(), Name: name, Emoji: "🧡"}
}

func deed(name string) model.Deed {
	return model.Deed{ID: uuid.New(), Name: name}
}

func moments(memberID, deedID uuid.UUID, at time.Time, n int) []model.Moment {
	out := make([]model.Moment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Moment{
			ID:         uuid.New(),
			DeedID:     deedID,
			MemberID:   memberID,
			HappenedAt: at.Add(time.Duration(i) * time.Minute),
			LoggedAt:   at,
		})
	}
	return out
}

func TestWeekRangeMondayStart(t *testing.T) {
	// Wed Mar 4 2026.
	ref := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

	start, end := WeekRange(ref, true)

	wantStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantStart.AddDate(0, 0, 7)) {
		t.Errorf("end = %v, want %v", end, wantStart.AddDate(0, 0, 7))
	}
}

func TestWeekRangeSundayStart(t *testing.T) {
	ref := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

	start, _ := WeekRange(ref, false)

	wantStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) // Sunday
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
}

func TestBuildEmptyWeek(t *testing.T) {
	ref := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	a := member("Alice")

	got := Build(ref, true, nil, []model.Member{a}, nil)

	if got.TotalMoments != 0 {
		t.Errorf("total = %d, want 0", got.TotalMoments)
	}
	if got.Insight != insightFresh {
		t.Errorf("insight = %q, want fresh-week message", got.Insight)
	}
	if len(got.Contributions) != 1 {
		t.Fatalf("contributions = %d, want 1", len(got.Contributions))
	}
	if got.Contributions[0].Percentage != 0 {
		t.Errorf("percentage = %v, want 0 for empty week", got.Contributions[0].Percentage)
	}
}

func TestBuildPercentagesAndRebalanceInsight(t *testing.T) {
	ref := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	a := member("Alice")
	b := member("Bob")
	bathe := deed("Bathed")

	var all []model.Moment
	all = append(all, moments(a.ID, bathe.ID, ref, 8)...)
	all = append(all, moments(b.ID, bathe.ID, ref, 2)...)

	got := Build(ref, true, all, []model.Member{a, b}, []model.Deed{bathe})

	if got.TotalMoments != 10 {
		t.Fatalf("total = %d, want 10", got.TotalMoments)
	}
	if got.Contributions[0].Percentage != 80 {
		t.Errorf("Alice percentage = %v, want 80", got.Contributions[0].Percentage)
	}
	if got.Contributions[1].Percentage != 20 {
		t.Errorf("Bob percentage = %v, want 20", got.Contributions[1].Percentage)
	}
	if got.Insight != insightRebalance {
		t.Errorf("insight = %q, want rebalance message", got.Insight)
	}

	sum := 0
	for _, c := range got.Contributions {
		sum += c.MomentCount
		if c.Percentage < 0 || c.Percentage > 100 {
			t.Errorf("percentage %v out of [0,100]", c.Percentage)
		}
	}
	if sum != got.TotalMoments {
		t.Errorf("contribution counts sum to %d, want %d", sum, got.TotalMoments)
	}
}

func TestBuildBalancedAndLeanedInsights(t *testing.T) {
	ref := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	a := member("Alice")
	b := member("Bob")
	d := deed("Cooked")

	cases := []struct {
		aCount, bCount int
		want           string
	}{
		{5, 5, insightBalanced},  // gap 0
		{11, 9, insightBalanced}, // gap 10
		{6, 4, insightLeaned},    // gap 20
		{13, 7, insightLeaned},   // gap 30
	}

	for _, c := range cases {
		var all []model.Moment
		all = append(all, moments(a.ID, d.ID, ref, c.aCount)...)
		all = append(all, moments(b.ID, d.ID, ref, c.bCount)...)

		got := Build(ref, true, all, []model.Member{a, b}, []model.Deed{d})
		if got.Insight != c.want {
			t.Errorf("%d vs %d: insight = %q, want %q", c.aCount, c.bCount, got.Insight, c.want)
		}
	}
}

func TestBuildSoloContributorInsight(t *testing.T) {
	ref := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	a := member("Alice")
	b := member("Bob")
	d := deed("Walked")

	all := moments(a.ID, d.ID, ref, 4)

	// Bob is active but contributed nothing this week.
	got := Build(ref, true, all, []model.Member{a, b}, []model.Deed{d})

	if got.Insight != insightSolo {
		t.Errorf("insight = %q, want solo-contributor message", got.Insight)
	}
}

func TestBuildTopDeeds(t *testing.T) {
	ref := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	a := member("Alice")
	bathe := deed("Bathed")
	cook := deed("Cooked")
	walk := deed("Walked")
	read := deed("Read")

	var all []model.Moment
	all = append(all, moments(a.ID, cook.ID, ref, 3)...)
	all = append(all, moments(a.ID, bathe.ID, ref, 2)...)
	all = append(all, moments(a.ID, walk.ID, ref, 2)...)
	all = append(all, moments(a.ID, read.ID, ref, 1)...)

	got := Build(ref, true, all, []model.Member{a}, []model.Deed{bathe, cook, walk, read})

	top := got.Contributions[0].TopDeeds
	if len(top) != 3 {
		t.Fatalf("top deeds = %v, want 3 entries", top)
	}
	if top[0] != "Cooked" {
		t.Errorf("top[0] = %q, want Cooked", top[0])
	}
	// Bathed and Walked tie at 2; Bathed occurred first.
	if top[1] != "Bathed" || top[2] != "Walked" {
		t.Errorf("tie-break order = %v, want [Cooked Bathed Walked]", top)
	}
	if got.TopDeed != "Cooked" {
		t.Errorf("overall top deed = %q, want Cooked", got.TopDeed)
	}
}

func TestBuildExcludesMomentsOutsideWeek(t *testing.T) {
	ref := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	a := member("Alice")
	d := deed("Dishes")

	var all []model.Moment
	all = append(all, moments(a.ID, d.ID, ref, 2)...)
	// Previous week and next week.
	all = append(all, moments(a.ID, d.ID, ref.AddDate(0, 0, -7), 3)...)
	all = append(all, moments(a.ID, d.ID, ref.AddDate(0, 0, 7), 3)...)

	got := Build(ref, true, all, []model.Member{a}, []model.Deed{d})

	if got.TotalMoments != 2 {
		t.Errorf("total = %d, want 2", got.TotalMoments)
	}
}

func TestBuildUnknownDeedSkippedInTopDeeds(t *testing.T) {
	ref := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	a := member("Alice")

	all := moments(a.ID, uuid.New(), ref, 2) // deed not in catalog

	got := Build(ref, true, all, []model.Member{a}, nil)

	if len(got.Contributions[0].TopDeeds) != 0 {
		t.Errorf("top deeds = %v, want empty for unresolvable deed", got.Contributions[0].TopDeeds)
	}
	if got.TopDeed != "" {
		t.Errorf("top deed = %q, want empty", got.TopDeed)
	}
}
