package cost

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cosmolaser/content-gap/pkg/dataforseo"
	"github.com/cosmolaser/content-gap/pkg/dataforseo/mocks"
)

func TestLedger_AddAndEntries(t *testing.T) {
	l := NewLedger(0)
	l.Add("ranked_keywords", 0.01)
	l.Add("keyword_ideas", 0.05)
	l.Add("ranked_keywords", 0.02)

	assert.InDelta(t, 0.08, l.Total(), 1e-9)

	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "keyword_ideas", entries[0].Operation)
	assert.Equal(t, 1, entries[0].Calls)
	assert.Equal(t, "ranked_keywords", entries[1].Operation)
	assert.Equal(t, 2, entries[1].Calls)
	assert.InDelta(t, 0.03, entries[1].Cost, 1e-9)
}

func TestLedger_Concurrent(t *testing.T) {
	l := NewLedger(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Add("ranked_keywords", 0.01)
		}()
	}
	wg.Wait()

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 50, entries[0].Calls)
	assert.InDelta(t, 0.5, l.Total(), 1e-9)
}

func TestLedger_Allow(t *testing.T) {
	tests := []struct {
		name    string
		budget  float64
		spent   float64
		wantErr bool
	}{
		{name: "unlimited", budget: 0, spent: 100},
		{name: "under budget", budget: 1, spent: 0.5},
		{name: "at budget", budget: 1, spent: 1, wantErr: true},
		{name: "over budget", budget: 1, spent: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(tt.budget)
			l.Add("ranked_keywords", tt.spent)
			err := l.Allow()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "budget exceeded")
		})
	}
}

func TestTrack_RecordsCost(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("RankedKeywords", mock.Anything, "a.dk", 100).
		Return(&dataforseo.Response[dataforseo.RankedKeywordsResult]{Cost: 0.0103}, nil)
	client.On("KeywordIdeas", mock.Anything, []string{"botox"}, 10).
		Return(&dataforseo.Response[dataforseo.KeywordIdeasResult]{Cost: 0.05}, nil)
	client.On("CompetitorsDomain", mock.Anything, "a.dk", 5).
		Return(&dataforseo.Response[dataforseo.CompetitorsDomainResult]{Cost: 0.02}, nil)

	l := NewLedger(0)
	tracked := Track(client, l)
	ctx := context.Background()

	_, err := tracked.RankedKeywords(ctx, "a.dk", 100)
	require.NoError(t, err)
	_, err = tracked.KeywordIdeas(ctx, []string{"botox"}, 10)
	require.NoError(t, err)
	_, err = tracked.CompetitorsDomain(ctx, "a.dk", 5)
	require.NoError(t, err)

	assert.InDelta(t, 0.0803, l.Total(), 1e-9)
	var ops []string
	for _, e := range l.Entries() {
		ops = append(ops, e.Operation)
	}
	assert.Equal(t, []string{"competitors_domain", "keyword_ideas", "ranked_keywords"}, ops)
}

func TestTrack_ErrorWithoutResponse(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("RankedKeywords", mock.Anything, "a.dk", 100).
		Return(nil, errors.New("boom"))

	l := NewLedger(0)
	_, err := Track(client, l).RankedKeywords(context.Background(), "a.dk", 100)
	require.Error(t, err)
	assert.Empty(t, l.Entries())
}

func TestTrack_RefusesOverBudget(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("RankedKeywords", mock.Anything, "a.dk", 100).
		Return(&dataforseo.Response[dataforseo.RankedKeywordsResult]{Cost: 0.5}, nil).
		Once()

	l := NewLedger(0.5)
	tracked := Track(client, l)
	ctx := context.Background()

	_, err := tracked.RankedKeywords(ctx, "a.dk", 100)
	require.NoError(t, err)

	_, err = tracked.RankedKeywords(ctx, "a.dk", 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget exceeded")
	assert.InDelta(t, 0.5, l.Total(), 1e-9)
}
