package settings

import (
	"slices"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var (
	// ErrExists is returned when adding a value that is already present.
	ErrExists = eris.New("already exists")
	// ErrNotFound is returned when removing a value that is not present.
	ErrNotFound = eris.New("not found")
	// ErrEmpty is returned for blank input.
	ErrEmpty = eris.New("value must not be empty")
)

// Editor applies mutations to a Settings value and persists it after each one.
// Persistence failures are logged and do not fail the mutation.
type Editor struct {
	s     *Settings
	store *Store
	now   func() time.Time
	log   *zap.Logger
}

// NewEditor wraps s. A nil store keeps changes in memory only.
func NewEditor(s *Settings, store *Store) *Editor {
	return &Editor{
		s:     s,
		store: store,
		now:   time.Now,
		log:   zap.L().With(zap.String("component", "settings")),
	}
}

// Settings returns the edited value.
func (e *Editor) Settings() *Settings { return e.s }

// AddCompetitor appends a competitor domain.
func (e *Editor) AddCompetitor(domain string) error {
	return e.add(&e.s.Competitors, domain, "competitor")
}

// RemoveCompetitor removes a competitor domain.
func (e *Editor) RemoveCompetitor(domain string) error {
	return e.remove(&e.s.Competitors, domain, "competitor")
}

// SetCompetitors replaces the competitor list. Blank entries are dropped.
func (e *Editor) SetCompetitors(domains []string) error {
	return e.set(&e.s.Competitors, domains, "competitors")
}

// AddTreatmentKeyword appends a treatment keyword.
func (e *Editor) AddTreatmentKeyword(keyword string) error {
	return e.add(&e.s.TreatmentKeywords, keyword, "treatment keyword")
}

// RemoveTreatmentKeyword removes a treatment keyword.
func (e *Editor) RemoveTreatmentKeyword(keyword string) error {
	return e.remove(&e.s.TreatmentKeywords, keyword, "treatment keyword")
}

// SetTreatmentKeywords replaces the treatment keyword list.
func (e *Editor) SetTreatmentKeywords(keywords []string) error {
	return e.set(&e.s.TreatmentKeywords, keywords, "treatment keywords")
}

// ToggleFilter flips keyword filtering and returns the new state.
func (e *Editor) ToggleFilter() bool {
	e.s.FilterKeywords = !e.s.FilterKeywords
	e.log.Info("keyword filtering toggled", zap.Bool("enabled", e.s.FilterKeywords))
	e.persist()
	return e.s.FilterKeywords
}

// SetTargetDomain changes the domain the analysis runs for.
func (e *Editor) SetTargetDomain(domain string) error {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return eris.Wrap(ErrEmpty, "target domain")
	}
	e.s.TargetDomain = domain
	e.log.Info("target domain changed", zap.String("domain", domain))
	e.persist()
	return nil
}

// Replace swaps in a whole new settings value and saves it. Unlike the
// single-field edits it reports a failed save.
func (e *Editor) Replace(s Settings) error {
	*e.s = *s.Clone()
	return e.Save()
}

// Save persists the current settings and reports the outcome.
func (e *Editor) Save() error {
	if e.store == nil {
		return nil
	}
	e.s.Touch(e.now())
	return e.store.Save(e.s)
}

func (e *Editor) persist() {
	if err := e.Save(); err != nil {
		e.log.Warn("settings not saved", zap.Error(err))
	}
}

func (e *Editor) add(list *[]string, value, what string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return eris.Wrap(ErrEmpty, what)
	}
	if slices.Contains(*list, value) {
		return eris.Wrapf(ErrExists, "%s %q", what, value)
	}
	*list = append(*list, value)
	e.log.Info("added "+what, zap.String("value", value))
	e.persist()
	return nil
}

func (e *Editor) remove(list *[]string, value, what string) error {
	value = strings.TrimSpace(value)
	i := slices.Index(*list, value)
	if i < 0 {
		return eris.Wrapf(ErrNotFound, "%s %q", what, value)
	}
	*list = slices.Delete(*list, i, i+1)
	e.log.Info("removed "+what, zap.String("value", value))
	e.persist()
	return nil
}

func (e *Editor) set(list *[]string, values []string, what string) error {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return eris.Wrap(ErrEmpty, what)
	}
	*list = out
	e.log.Info("updated "+what, zap.Int("count", len(out)))
	e.persist()
	return nil
}
