// Package gap finds the keywords competitors rank for that the target does
// not, and scores them by commercial priority.
package gap

import "math"

// Tier is a discrete priority level derived from a score.
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// Score weights. They sum to 1, so a perfect keyword scores
// 0.5*5 + 0.4*5 + 0.1*1 = 4.6 on the 0-10 scale.
const (
	volumeWeight      = 0.5
	competitionWeight = 0.4
	cpcWeight         = 0.1

	highThreshold   = 4.0
	mediumThreshold = 2.5
)

// Score computes the priority score (0-10, two decimals) and tier of a
// keyword. Zero values stand in for absent metrics. The tier comes from the
// unrounded score, so 2.4996 reports as 2.5 but stays LOW.
//
// A competition of zero is indistinguishable from missing data and earns the
// best competition bucket.
func Score(searchVolume int64, competition, cpc float64) (float64, Tier) {
	score := volumeWeight*float64(VolumeBucket(searchVolume)) +
		competitionWeight*float64(CompetitionBucket(competition)) +
		cpcWeight*CPCBonus(cpc)

	return math.Round(score*100) / 100, TierFor(score)
}

// TierFor maps a score onto its tier.
func TierFor(score float64) Tier {
	switch {
	case score >= highThreshold:
		return TierHigh
	case score >= mediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// VolumeBucket places a monthly search volume on a 0-5 scale.
func VolumeBucket(volume int64) int {
	switch {
	case volume <= 0:
		return 0
	case volume < 10:
		return 1
	case volume < 50:
		return 2
	case volume < 100:
		return 3
	case volume < 500:
		return 4
	default:
		return 5
	}
}

// CompetitionBucket places a 0-1 competition value on an inverted 0-5 scale:
// lower competition is better.
func CompetitionBucket(competition float64) int {
	switch {
	case math.IsNaN(competition) || competition <= 0:
		return 5
	case competition < 0.2:
		return 4
	case competition < 0.4:
		return 3
	case competition < 0.6:
		return 2
	case competition < 0.8:
		return 1
	default:
		return 0
	}
}

// CPCBonus returns cpc/10 clamped to [0, 1].
func CPCBonus(cpc float64) float64 {
	if math.IsNaN(cpc) || cpc <= 0 {
		return 0
	}
	return math.Min(cpc/10, 1)
}
