// Package scoring holds the ranking and aggregate rules behind the
// dashboard, leads, and community views. Every function is pure: it works
// over already-fetched slices and degrades to empty/zero on empty input,
// never to an error.
package scoring

import (
	"math"
	"sort"
	"time"

	"partner-growth-system/models"
)

// Default display limits.
const (
	DefaultLeadLimit        = 5
	DefaultPerformerLimit   = 3
	DashboardAchievementCap = 4
)

// RecommendLeads orders a partner's leads by descending match score (nil
// scored as 0) and truncates to limit. The sort is stable, so equal scores
// keep their insertion order.
func RecommendLeads(leads []models.Lead, limit int) []models.Lead {
	if limit <= 0 {
		limit = DefaultLeadLimit
	}
	ranked := append([]models.Lead(nil), leads...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore() > ranked[j].MatchScore()
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// CountHotLeads returns how many leads clear the hot-lead score bar.
func CountHotLeads(leads []models.Lead) int {
	n := 0
	for i := range leads {
		if leads[i].IsHot() {
			n++
		}
	}
	return n
}

// SkillProgress aggregates a partner's skill ratings into a single
// percentage, round(sum(rating)/sum(max)*100). An empty skill set yields 0
// rather than dividing by zero.
func SkillProgress(ratings []models.PartnerSkill) int {
	var sum, max int
	for i := range ratings {
		sum += ratings[i].Rating
		max += ratings[i].MaxRating
	}
	if max == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(max) * 100))
}

// PickNextBestAction returns the pending action with the lowest priority
// value, first in storage order winning ties, or nil when nothing is
// pending.
func PickNextBestAction(actions []models.NextBestAction) *models.NextBestAction {
	var best *models.NextBestAction
	for i := range actions {
		a := &actions[i]
		if a.Status != models.ActionStatusPending {
			continue
		}
		if best == nil || a.Priority < best.Priority {
			best = a
		}
	}
	return best
}

// AchievementStatus is one catalog entry annotated with the partner's
// completion state. EarnedAt is nil while the achievement is in progress.
type AchievementStatus struct {
	Achievement models.Achievement
	Completed   bool
	EarnedAt    *time.Time
}

// AchievementView partitions the full catalog into earned-then-incomplete,
// each achievement appearing exactly once, truncated to limit (<=0 means
// no truncation). Completion is derived solely from the earned rows.
func AchievementView(catalog []models.Achievement, earned []models.PartnerAchievement, limit int) []AchievementStatus {
	earnedAt := make(map[uint]time.Time, len(earned))
	for _, pa := range earned {
		if _, ok := earnedAt[pa.AchievementID]; !ok {
			earnedAt[pa.AchievementID] = pa.EarnedAt
		}
	}

	view := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		if at, ok := earnedAt[a.ID]; ok {
			when := at
			view = append(view, AchievementStatus{Achievement: a, Completed: true, EarnedAt: &when})
		}
	}
	for _, a := range catalog {
		if _, ok := earnedAt[a.ID]; !ok {
			view = append(view, AchievementStatus{Achievement: a})
		}
	}
	if limit > 0 && len(view) > limit {
		view = view[:limit]
	}
	return view
}

// RankedPartner is a leaderboard row: dense rank 1..N assigned by output
// position, not by score ties.
type RankedPartner struct {
	Partner models.Partner
	Rank    int
}

// TopPerformers sorts partners by descending monthly earnings and assigns
// ranks to the first limit entries.
func TopPerformers(partners []models.Partner, limit int) []RankedPartner {
	if limit <= 0 {
		limit = DefaultPerformerLimit
	}
	sorted := append([]models.Partner(nil), partners...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EarningsThisMonth > sorted[j].EarningsThisMonth
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	ranked := make([]RankedPartner, len(sorted))
	for i, p := range sorted {
		ranked[i] = RankedPartner{Partner: p, Rank: i + 1}
	}
	return ranked
}
