// Package settings holds the analysis knobs a user edits between runs: the
// target domain, competitor domains, treatment keywords and the filter flag.
package settings

import (
	"slices"
	"time"
)

// TimestampLayout is the format of LastUpdated.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultTargetDomain is used when neither config nor the settings file name one.
const DefaultTargetDomain = "cosmolaser.dk"

// DefaultCompetitors is the competitor list a fresh install starts with.
var DefaultCompetitors = []string{
	"laserklinik.dk",
	"klinikken.dk",
	"epilationsklinikken.dk",
	"dentalelaser.dk",
	"beautylaser.dk",
	"laserbehandling.dk",
}

// SuggestedCompetitors are laser and cosmetic clinics worth comparing against.
var SuggestedCompetitors = []string{
	"epilationsklinikken.dk",
	"beautylaser.dk",
	"laserbehandling.dk",
	"dentalelaser.dk",
	"laserplus.dk",
	"aestheticslaser.dk",
}

// LaserCompetitors replaces the competitor list when the user asks for
// laser-relevant clinics only.
var LaserCompetitors = []string{
	"laserklinik.dk",
	"epilationsklinikken.dk",
	"beautylaser.dk",
	"laserbehandling.dk",
}

// Settings is the persisted analysis configuration.
type Settings struct {
	Competitors       []string `json:"competitors"`
	TreatmentKeywords []string `json:"treatment_keywords"`
	FilterKeywords    bool     `json:"filter_keywords"`
	TargetDomain      string   `json:"target_domain"`
	LastUpdated       string   `json:"last_updated,omitempty"`
}

// Defaults returns the built-in settings for the given target. An empty
// target falls back to DefaultTargetDomain.
func Defaults(target string) Settings {
	if target == "" {
		target = DefaultTargetDomain
	}
	return Settings{
		Competitors:       slices.Clone(DefaultCompetitors),
		TreatmentKeywords: Categories().AllKeywords(),
		FilterKeywords:    true,
		TargetDomain:      target,
	}
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Competitors = slices.Clone(s.Competitors)
	c.TreatmentKeywords = slices.Clone(s.TreatmentKeywords)
	return &c
}

// Touch stamps LastUpdated with t.
func (s *Settings) Touch(t time.Time) {
	s.LastUpdated = t.Format(TimestampLayout)
}
