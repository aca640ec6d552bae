package gap

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cosmolaser/content-gap/internal/model"
)

// Filter keeps the keywords that contain at least one treatment term,
// compared case-insensitively. With enabled false every keyword is kept.
func Filter(keywords []model.Keyword, treatments []string, enabled bool) []model.Keyword {
	if !enabled {
		return keywords
	}

	m := NewMatcher(treatments)
	out := make([]model.Keyword, 0, len(keywords))
	for _, k := range keywords {
		if k.Keyword != "" && m.Match(k.Keyword) {
			out = append(out, k)
		}
	}
	return out
}

// Matcher tests keyword text against a fixed list of treatment terms.
type Matcher struct {
	caser cases.Caser
	terms []string
}

// NewMatcher lower-cases the terms once. Blank terms are dropped.
func NewMatcher(treatments []string) *Matcher {
	m := &Matcher{caser: cases.Lower(language.Danish)}
	for _, t := range treatments {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		m.terms = append(m.terms, m.caser.String(t))
	}
	return m
}

// Match reports whether keyword contains any of the terms.
func (m *Matcher) Match(keyword string) bool {
	kw := m.caser.String(keyword)
	for _, t := range m.terms {
		if strings.Contains(kw, t) {
			return true
		}
	}
	return false
}
