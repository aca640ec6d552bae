package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// DefaultPath is the settings file used when config names none.
const DefaultPath = "settings.json"

// Store reads and writes settings as a flat JSON file.
type Store struct {
	path string
}

// NewStore creates a Store backed by path.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// fileSettings mirrors Settings with optional fields so keys missing from the
// file keep their defaults.
type fileSettings struct {
	Competitors       *[]string `json:"competitors"`
	TreatmentKeywords *[]string `json:"treatment_keywords"`
	FilterKeywords    *bool     `json:"filter_keywords"`
	TargetDomain      *string   `json:"target_domain"`
	LastUpdated       string    `json:"last_updated"`
}

// Load reads the settings file over a copy of defaults. It always returns
// usable settings: a missing file yields the defaults with found false, and
// an unreadable file yields the defaults together with the error.
func (s *Store) Load(defaults Settings) (st *Settings, found bool, err error) {
	st = defaults.Clone()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, false, nil
	}
	if err != nil {
		return st, false, eris.Wrapf(err, "settings: read %s", s.path)
	}

	var raw fileSettings
	if err := json.Unmarshal(data, &raw); err != nil {
		return st, false, eris.Wrapf(err, "settings: parse %s", s.path)
	}

	if raw.Competitors != nil {
		st.Competitors = *raw.Competitors
	}
	if raw.TreatmentKeywords != nil {
		st.TreatmentKeywords = *raw.TreatmentKeywords
	}
	if raw.FilterKeywords != nil {
		st.FilterKeywords = *raw.FilterKeywords
	}
	if raw.TargetDomain != nil && *raw.TargetDomain != "" {
		st.TargetDomain = *raw.TargetDomain
	}
	st.LastUpdated = raw.LastUpdated

	if st.Competitors == nil {
		st.Competitors = []string{}
	}
	if st.TreatmentKeywords == nil {
		st.TreatmentKeywords = []string{}
	}
	return st, true, nil
}

// Save overwrites the settings file. The write goes through a temp file in the
// same directory so a crash never leaves a truncated file behind.
func (s *Store) Save(st *Settings) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return eris.Wrap(err, "settings: encode")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return eris.Wrapf(err, "settings: create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrap(err, "settings: chmod temp file")
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrap(err, "settings: write temp file")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "settings: close temp file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return eris.Wrapf(err, "settings: replace %s", s.path)
	}
	return nil
}
