// Package cost tracks the money spent on DataForSEO calls.
package cost

import (
	"context"
	"sort"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cosmolaser/content-gap/pkg/dataforseo"
)

// ErrBudgetExceeded is returned instead of calling the API once the spend
// reaches the configured budget.
var ErrBudgetExceeded = eris.New("cost: budget exceeded")

// Entry is the spend of one API operation.
type Entry struct {
	Operation string  `json:"operation"`
	Calls     int     `json:"calls"`
	Cost      float64 `json:"cost"`
}

// Ledger accumulates spend per operation. It is safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	budget  float64
	entries map[string]*Entry
}

// NewLedger creates a Ledger. A budget of zero or less means unlimited.
func NewLedger(budget float64) *Ledger {
	return &Ledger{budget: budget, entries: make(map[string]*Entry)}
}

// Add records one call.
func (l *Ledger) Add(operation string, cost float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[operation]
	if !ok {
		e = &Entry{Operation: operation}
		l.entries[operation] = e
	}
	e.Calls++
	e.Cost += cost
}

// Total returns the spend so far.
func (l *Ledger) Total() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total()
}

func (l *Ledger) total() float64 {
	var sum float64
	for _, e := range l.entries {
		sum += e.Cost
	}
	return sum
}

// Entries returns a copy of all entries ordered by operation.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out
}

// Allow reports ErrBudgetExceeded once the budget is used up.
func (l *Ledger) Allow() error {
	if l.budget <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if spent := l.total(); spent >= l.budget {
		return eris.Wrapf(ErrBudgetExceeded, "spent %.4f of %.4f", spent, l.budget)
	}
	return nil
}

// Track wraps c so every response's cost is recorded in l and calls are
// refused once the budget is spent.
func Track(c dataforseo.Client, l *Ledger) dataforseo.Client {
	return &trackedClient{next: c, ledger: l}
}

type trackedClient struct {
	next   dataforseo.Client
	ledger *Ledger
}

func (t *trackedClient) RankedKeywords(ctx context.Context, domain string, limit int) (*dataforseo.Response[dataforseo.RankedKeywordsResult], error) {
	if err := t.ledger.Allow(); err != nil {
		return nil, err
	}
	resp, err := t.next.RankedKeywords(ctx, domain, limit)
	if resp != nil {
		t.record("ranked_keywords", resp.Cost)
	}
	return resp, err
}

func (t *trackedClient) KeywordIdeas(ctx context.Context, seeds []string, limit int) (*dataforseo.Response[dataforseo.KeywordIdeasResult], error) {
	if err := t.ledger.Allow(); err != nil {
		return nil, err
	}
	resp, err := t.next.KeywordIdeas(ctx, seeds, limit)
	if resp != nil {
		t.record("keyword_ideas", resp.Cost)
	}
	return resp, err
}

func (t *trackedClient) CompetitorsDomain(ctx context.Context, domain string, limit int) (*dataforseo.Response[dataforseo.CompetitorsDomainResult], error) {
	if err := t.ledger.Allow(); err != nil {
		return nil, err
	}
	resp, err := t.next.CompetitorsDomain(ctx, domain, limit)
	if resp != nil {
		t.record("competitors_domain", resp.Cost)
	}
	return resp, err
}

func (t *trackedClient) record(operation string, cost float64) {
	t.ledger.Add(operation, cost)
	zap.L().Debug("dataforseo call",
		zap.String("component", "cost"),
		zap.String("operation", operation),
		zap.Float64("cost", cost),
		zap.Float64("total", t.ledger.Total()),
	)
}
