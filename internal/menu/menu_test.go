package menu

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmolaser/content-gap/internal/analyzer"
	"github.com/cosmolaser/content-gap/internal/gap"
	"github.com/cosmolaser/content-gap/internal/model"
	"github.com/cosmolaser/content-gap/internal/settings"
)

type fakeRunner struct {
	calls int
	got   *settings.Settings
	res   *analyzer.Result
	err   error
}

func (f *fakeRunner) Run(_ context.Context, s *settings.Settings) (*analyzer.Result, error) {
	f.calls++
	f.got = s.Clone()
	return f.res, f.err
}

var testCatalog = settings.Catalog{
	{Name: "Botox", Keywords: []string{"botox", "botulinum"}},
	{Name: "Filler", Keywords: []string{"filler"}},
}

type harness struct {
	menu   *Menu
	out    *bytes.Buffer
	editor *settings.Editor
	store  *settings.Store
	runner *fakeRunner
	writes []string
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	store := settings.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	s := &settings.Settings{
		TargetDomain:      "cosmolaser.dk",
		Competitors:       []string{"a.dk", "b.dk"},
		TreatmentKeywords: []string{"botox", "my custom"},
		FilterKeywords:    true,
	}
	h := &harness{
		out:    &bytes.Buffer{},
		editor: settings.NewEditor(s, store),
		store:  store,
		runner: &fakeRunner{res: &analyzer.Result{
			Target: model.DomainKeywords{Domain: "cosmolaser.dk", Keywords: []model.Keyword{}},
			Ranked: []gap.Gap{{Competitor: "a.dk", Keyword: model.Keyword{Keyword: "filler", SearchVolume: 90}, Score: 3.1, Tier: gap.TierMedium}},
		}},
	}
	h.menu = New(strings.NewReader(input), h.out, h.editor, h.runner, Options{
		Output:            "report.xlsx",
		SettingsPath:      store.Path(),
		CredentialsLoaded: true,
		Catalog:           testCatalog,
		Report: func(path string, _ *analyzer.Result) error {
			h.writes = append(h.writes, path)
			return nil
		},
	})
	return h
}

func (h *harness) saved(t *testing.T) *settings.Settings {
	t.Helper()
	st, found, err := h.store.Load(settings.Settings{})
	require.NoError(t, err)
	require.True(t, found)
	return st
}

func input(lines ...string) string { return strings.Join(lines, "\n") + "\n" }

func TestRun_ExitAndEOF(t *testing.T) {
	h := newHarness(t, input("7"))
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Contains(t, h.out.String(), "CONTENT GAP ANALYZER FOR COSMOLASER.DK")
	assert.Contains(t, h.out.String(), "Goodbye!")

	h = newHarness(t, "")
	require.NoError(t, h.menu.Run(context.Background()))

	// EOF inside a submenu ends the session too.
	h = newHarness(t, input("1", "2"))
	require.NoError(t, h.menu.Run(context.Background()))
}

func TestRun_InvalidChoice(t *testing.T) {
	h := newHarness(t, input("9", "abc", "7"))
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(h.out.String(), "Invalid choice. Try again."))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := newHarness(t, input("7"))
	assert.Error(t, h.menu.Run(ctx))
}

func TestCompetitors(t *testing.T) {
	h := newHarness(t, input(
		"1",
		"2", "c.dk",
		"2", "c.dk",
		"3", "a.dk",
		"3", "zzz.dk",
		"2", "",
		"1",
		"5",
		"7",
	))
	require.NoError(t, h.menu.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Added competitor: c.dk")
	assert.Contains(t, out, "Already in the list")
	assert.Contains(t, out, "Removed competitor: a.dk")
	assert.Contains(t, out, "Not in the list")
	assert.Contains(t, out, "Nothing entered")
	assert.Equal(t, []string{"b.dk", "c.dk"}, h.editor.Settings().Competitors)
	assert.Equal(t, []string{"b.dk", "c.dk"}, h.saved(t).Competitors)
}

func TestCompetitors_SetList(t *testing.T) {
	h := newHarness(t, input("1", "4", "x.dk", " y.dk ", "", "5", "7"))
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Equal(t, []string{"x.dk", "y.dk"}, h.saved(t).Competitors)
	assert.Contains(t, h.out.String(), "Competitor list set (2 domains)")
}

func TestTreatments(t *testing.T) {
	h := newHarness(t, input(
		"2",
		"1",
		"2", "filler",
		"3", "botox",
		"5",
		"6",
		"7",
	))
	require.NoError(t, h.menu.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Botox (1):")
	assert.Contains(t, out, "Custom (1):")
	assert.Contains(t, out, "Keyword filtering is now OFF")

	saved := h.saved(t)
	assert.Equal(t, []string{"my custom", "filler"}, saved.TreatmentKeywords)
	assert.False(t, saved.FilterKeywords)
}

func TestTreatments_SelectCategories(t *testing.T) {
	h := newHarness(t, input("2", "4", "2,1", "6", "7"))
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Equal(t, []string{"filler", "botox", "botulinum"}, h.saved(t).TreatmentKeywords)
	assert.Contains(t, h.out.String(), "Added: Botox")

	h = newHarness(t, input("2", "4", "42", "6", "7"))
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Contains(t, h.out.String(), "No valid categories selected")
	assert.Equal(t, []string{"botox", "my custom"}, h.editor.Settings().TreatmentKeywords)
}

func TestTarget(t *testing.T) {
	h := newHarness(t, input("3", "1", "2", " example.dk ", "2", "", "3", "7"))
	require.NoError(t, h.menu.Run(context.Background()))

	assert.Contains(t, h.out.String(), "Target domain changed to: example.dk")
	assert.Contains(t, h.out.String(), "Nothing entered")
	assert.Equal(t, "example.dk", h.saved(t).TargetDomain)
}

func TestSettingsMenu(t *testing.T) {
	h := newHarness(t, input("4", "2", "4", "1", "7"))
	require.NoError(t, h.menu.Run(context.Background()))
	assert.Contains(t, h.out.String(), "API credentials loaded")
	assert.False(t, h.editor.Settings().FilterKeywords)
}

func TestAnalyze(t *testing.T) {
	h := newHarness(t, input("5", "7"))
	require.NoError(t, h.menu.Run(context.Background()))

	assert.Equal(t, 1, h.runner.calls)
	assert.Equal(t, "cosmolaser.dk", h.runner.got.TargetDomain)
	assert.Equal(t, []string{"report.xlsx"}, h.writes)
	out := h.out.String()
	assert.Contains(t, out, "Content gaps: 1 (HIGH 0, MEDIUM 1, LOW 0)")
	assert.Contains(t, out, "Analysis complete! Check 'report.xlsx'.")
}

func TestAnalyze_Error(t *testing.T) {
	h := newHarness(t, input("5", "7"))
	h.runner.err = errors.New("analyzer: target domain is required")
	require.NoError(t, h.menu.Run(context.Background()))

	assert.Contains(t, h.out.String(), "Analysis failed: analyzer: target domain is required")
	assert.Empty(t, h.writes)
}

func TestStatus(t *testing.T) {
	h := newHarness(t, input("6", "7"))
	require.NoError(t, h.menu.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Target domain: cosmolaser.dk")
	assert.Contains(t, out, "Keyword filtering: ON")
	assert.Contains(t, out, "Competitors: 2")
	assert.Contains(t, out, "  2. b.dk")
	assert.Contains(t, out, "Keyword filtering active: 2 treatment terms")
}
