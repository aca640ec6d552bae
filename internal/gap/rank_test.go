package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmolaser/content-gap/internal/model"
)

func TestRank(t *testing.T) {
	t.Parallel()

	gaps := map[string][]model.Keyword{
		"a.dk": {
			{Keyword: "low", SearchVolume: 5, Competition: 0.9},             // 0.5
			{Keyword: "high", SearchVolume: 600, Competition: 0.1, CPC: 12}, // 4.2
		},
		"b.dk": {
			{Keyword: "mid-small", SearchVolume: 120, Competition: 0.5}, // 2.8
			{Keyword: "mid-large", SearchVolume: 450, Competition: 0.5}, // 2.8
			{Keyword: "strong", SearchVolume: 600, Competition: 0.1},    // 4.1
		},
		"c.dk": {
			{Keyword: "ignored", SearchVolume: 600},
		},
	}

	ranked := Rank([]string{"a.dk", "b.dk", "a.dk"}, gaps)
	require.Len(t, ranked, 5)

	var got []string
	for _, g := range ranked {
		got = append(got, g.Competitor+"/"+g.Keyword.Keyword)
	}
	assert.Equal(t, []string{
		"a.dk/high",
		"b.dk/strong",
		"b.dk/mid-large",
		"b.dk/mid-small",
		"a.dk/low",
	}, got)

	assert.InDelta(t, 4.2, ranked[0].Score, 1e-9)
	assert.Equal(t, TierHigh, ranked[0].Tier)
	assert.Equal(t, TierLow, ranked[4].Tier)
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	t.Parallel()

	gaps := map[string][]model.Keyword{
		"a.dk": {{Keyword: "x", SearchVolume: 40}},
		"b.dk": {{Keyword: "y", SearchVolume: 40}},
	}
	ranked := Rank([]string{"b.dk", "a.dk"}, gaps)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b.dk", ranked[0].Competitor)
	assert.Equal(t, "a.dk", ranked[1].Competitor)
}

func TestRank_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Rank(nil, nil))
	assert.Empty(t, Rank([]string{"a.dk"}, map[string][]model.Keyword{"a.dk": {}}))
}

func TestCountByTier(t *testing.T) {
	t.Parallel()

	counts := CountByTier([]Gap{{Tier: TierHigh}, {Tier: TierLow}, {Tier: TierLow}})
	assert.Equal(t, 1, counts[TierHigh])
	assert.Equal(t, 0, counts[TierMedium])
	assert.Equal(t, 2, counts[TierLow])
}

func TestRoundTo(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 0.123, RoundTo(0.12345, 3), 1e-12)
	assert.InDelta(t, 1.24, RoundTo(1.235001, 2), 1e-12)
	assert.InDelta(t, 0.0, RoundTo(0, 2), 1e-12)
}
