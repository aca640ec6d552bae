// Package analyzer runs a content gap analysis: it fetches ranked keywords for
// the target and each competitor, filters them to relevant treatments, and
// computes the gaps.
package analyzer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cosmolaser/content-gap/internal/gap"
	"github.com/cosmolaser/content-gap/internal/model"
	"github.com/cosmolaser/content-gap/internal/settings"
	"github.com/cosmolaser/content-gap/pkg/dataforseo"
)

// Result is the outcome of one analysis run.
type Result struct {
	RunID        string                     `json:"run_id"`
	TargetDomain string                     `json:"target_domain"`
	Filtered     bool                       `json:"filtered"`
	Target       model.DomainKeywords       `json:"target"`
	Competitors  []model.DomainKeywords     `json:"competitors"`
	Gaps         map[string][]model.Keyword `json:"-"`
	Ranked       []gap.Gap                  `json:"content_gaps"`
	StartedAt    time.Time                  `json:"started_at"`
	FinishedAt   time.Time                  `json:"finished_at"`
}

// CompetitorOrder returns the competitor domains in the order they were analyzed.
func (r *Result) CompetitorOrder() []string {
	out := make([]string, len(r.Competitors))
	for i, c := range r.Competitors {
		out[i] = c.Domain
	}
	return out
}

// Failed returns the domains whose fetch failed.
func (r *Result) Failed() []string {
	var out []string
	if r.Target.Error != "" {
		out = append(out, r.Target.Domain)
	}
	for _, c := range r.Competitors {
		if c.Error != "" {
			out = append(out, c.Domain)
		}
	}
	return out
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLimit sets the number of ranked keywords requested per domain.
func WithLimit(limit int) Option {
	return func(a *Analyzer) {
		a.limit = limit
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// WithRunID overrides the run ID generator.
func WithRunID(gen func() string) Option {
	return func(a *Analyzer) {
		a.newID = gen
	}
}

// Analyzer performs content gap analyses against the DataForSEO API.
type Analyzer struct {
	client dataforseo.Client
	limit  int
	now    func() time.Time
	newID  func() string
}

// New creates an Analyzer.
func New(client dataforseo.Client, opts ...Option) *Analyzer {
	a := &Analyzer{
		client: client,
		limit:  1000,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run analyzes s.TargetDomain against s.Competitors. Domains are fetched one
// at a time. A domain whose fetch fails contributes no keywords and the run
// carries on; only a cancelled context stops it early.
func (a *Analyzer) Run(ctx context.Context, s *settings.Settings) (*Result, error) {
	if s == nil {
		return nil, eris.New("analyzer: settings are required")
	}
	target := strings.TrimSpace(s.TargetDomain)
	if target == "" {
		return nil, eris.New("analyzer: target domain is required")
	}

	res := &Result{
		RunID:        a.newID(),
		TargetDomain: target,
		Filtered:     s.FilterKeywords,
		StartedAt:    a.now(),
	}
	log := zap.L().With(
		zap.String("component", "analyzer"),
		zap.String("run_id", res.RunID),
	)
	log.Info("analyzing content gap",
		zap.String("target", target),
		zap.Int("competitors", len(s.Competitors)),
		zap.Bool("filter", s.FilterKeywords),
	)

	res.Target = a.domainKeywords(ctx, log, target, s)

	seen := map[string]bool{}
	competitors := make(map[string][]model.Keyword, len(s.Competitors))
	for _, domain := range s.Competitors {
		domain = strings.TrimSpace(domain)
		if domain == "" || seen[domain] {
			continue
		}
		seen[domain] = true

		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "analyzer: run cancelled")
		}

		dk := a.domainKeywords(ctx, log, domain, s)
		res.Competitors = append(res.Competitors, dk)
		competitors[domain] = dk.Keywords
	}

	res.Gaps = gap.Find(res.Target.Keywords, competitors)
	res.Ranked = gap.Rank(res.CompetitorOrder(), res.Gaps)
	res.FinishedAt = a.now()

	counts := gap.CountByTier(res.Ranked)
	log.Info("analysis complete",
		zap.Int("target_keywords", len(res.Target.Keywords)),
		zap.Int("gaps", len(res.Ranked)),
		zap.Int("high", counts[gap.TierHigh]),
		zap.Int("medium", counts[gap.TierMedium]),
		zap.Int("low", counts[gap.TierLow]),
		zap.Strings("failed", res.Failed()),
		zap.Duration("elapsed", res.FinishedAt.Sub(res.StartedAt)),
	)
	return res, nil
}

// Inspect fetches and filters one domain's keywords using the settings'
// treatment list and filter flag.
func (a *Analyzer) Inspect(ctx context.Context, s *settings.Settings, domain string) model.DomainKeywords {
	log := zap.L().With(zap.String("component", "analyzer"))
	return a.domainKeywords(ctx, log, strings.TrimSpace(domain), s)
}

// Ideas returns keyword ideas for the seed terms.
func (a *Analyzer) Ideas(ctx context.Context, seeds []string, limit int) ([]model.Keyword, error) {
	resp, err := a.client.KeywordIdeas(ctx, seeds, limit)
	if err != nil {
		return nil, eris.Wrap(err, "analyzer: keyword ideas")
	}
	return ideaKeywords(resp.Results()), nil
}

// DiscoverCompetitors returns the domains competing for the same keywords as
// domain, excluding domain itself.
func (a *Analyzer) DiscoverCompetitors(ctx context.Context, domain string, limit int) ([]dataforseo.CompetitorDomain, error) {
	resp, err := a.client.CompetitorsDomain(ctx, domain, limit)
	if err != nil {
		return nil, eris.Wrap(err, "analyzer: competitors domain")
	}
	var out []dataforseo.CompetitorDomain
	for _, r := range resp.Results() {
		for _, it := range r.Items {
			if it.Domain == "" || strings.EqualFold(it.Domain, domain) {
				continue
			}
			out = append(out, it)
		}
	}
	return out, nil
}

func (a *Analyzer) domainKeywords(ctx context.Context, log *zap.Logger, domain string, s *settings.Settings) model.DomainKeywords {
	dk := model.DomainKeywords{Domain: domain, Keywords: []model.Keyword{}}

	resp, err := a.client.RankedKeywords(ctx, domain, a.limit)
	if err != nil {
		reason := "request"
		if dataforseo.IsAPIError(err) {
			reason = "api_status"
		}
		log.Warn("fetching keywords failed, continuing without domain",
			zap.String("domain", domain),
			zap.String("reason", reason),
			zap.Error(err),
		)
		dk.Error = err.Error()
		return dk
	}

	raw := rankedKeywords(resp.Results())
	dk.Total = len(raw)
	dk.Keywords = gap.Filter(raw, s.TreatmentKeywords, s.FilterKeywords)
	if dk.Keywords == nil {
		dk.Keywords = []model.Keyword{}
	}

	if s.FilterKeywords {
		log.Info("relevant keywords",
			zap.String("domain", domain),
			zap.Int("relevant", len(dk.Keywords)),
			zap.Int("total", dk.Total),
		)
	} else {
		log.Info("keywords fetched",
			zap.String("domain", domain),
			zap.Int("total", dk.Total),
		)
	}
	return dk
}
