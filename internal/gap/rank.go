package gap

import (
	"math"
	"sort"

	"github.com/cosmolaser/content-gap/internal/model"
)

// Gap is a keyword a competitor ranks for and the target does not.
type Gap struct {
	Competitor string        `json:"competitor"`
	Keyword    model.Keyword `json:"keyword"`
	Score      float64       `json:"priority_score"`
	Tier       Tier          `json:"priority_level"`
}

// Rank scores every gap and returns them sorted by score, then search
// volume, both descending. Competitors are visited in the given order and
// ties keep that order.
func Rank(order []string, gaps map[string][]model.Keyword) []Gap {
	var out []Gap
	seen := make(map[string]bool, len(order))
	for _, competitor := range order {
		if seen[competitor] {
			continue
		}
		seen[competitor] = true
		for _, k := range gaps[competitor] {
			score, tier := Score(k.SearchVolume, k.Competition, k.CPC)
			out = append(out, Gap{
				Competitor: competitor,
				Keyword:    k,
				Score:      score,
				Tier:       tier,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Keyword.SearchVolume > out[j].Keyword.SearchVolume
	})
	return out
}

// CountByTier tallies gaps per tier.
func CountByTier(gaps []Gap) map[Tier]int {
	counts := map[Tier]int{TierHigh: 0, TierMedium: 0, TierLow: 0}
	for _, g := range gaps {
		counts[g.Tier]++
	}
	return counts
}

// RoundTo rounds v to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
