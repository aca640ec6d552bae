// Package menu implements the interactive console: numbered menus for editing
// settings and running an analysis.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cosmolaser/content-gap/internal/analyzer"
	"github.com/cosmolaser/content-gap/internal/gap"
	"github.com/cosmolaser/content-gap/internal/settings"
)

// Runner runs an analysis for the given settings.
type Runner interface {
	Run(ctx context.Context, s *settings.Settings) (*analyzer.Result, error)
}

// ReportFunc writes a result to path.
type ReportFunc func(path string, res *analyzer.Result) error

// Options configures a Menu.
type Options struct {
	Output            string // report path
	SettingsPath      string
	CredentialsLoaded bool
	Catalog           settings.Catalog
	Report            ReportFunc
}

// Menu is one interactive session.
type Menu struct {
	in     *bufio.Scanner
	out    io.Writer
	editor *settings.Editor
	runner Runner
	opts   Options
	log    *zap.Logger
}

// errQuit ends the session when input runs out.
var errQuit = eris.New("menu: input closed")

// New creates a Menu reading choices from in and printing to out.
func New(in io.Reader, out io.Writer, editor *settings.Editor, runner Runner, opts Options) *Menu {
	if opts.Catalog == nil {
		opts.Catalog = settings.Categories()
	}
	return &Menu{
		in:     bufio.NewScanner(in),
		out:    out,
		editor: editor,
		runner: runner,
		opts:   opts,
		log:    zap.L().With(zap.String("component", "menu")),
	}
}

// Run shows the main menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "menu: cancelled")
		}

		m.mainMenu()
		choice, err := m.prompt("\nChoose (1-7): ")
		if err != nil {
			return m.quit(err)
		}

		switch choice {
		case "1":
			err = m.competitors()
		case "2":
			err = m.treatments()
		case "3":
			err = m.target()
		case "4":
			err = m.settingsMenu()
		case "5":
			m.analyze(ctx)
		case "6":
			m.status()
		case "7":
			m.println("\nGoodbye!")
			return nil
		default:
			m.println("Invalid choice. Try again.")
		}
		if err != nil {
			return m.quit(err)
		}
	}
}

func (m *Menu) quit(err error) error {
	if eris.Is(err, errQuit) {
		m.println("")
		return nil
	}
	return err
}

func (m *Menu) mainMenu() {
	s := m.editor.Settings()
	rule := strings.Repeat("=", 60)
	m.println("\n" + rule)
	m.printf("    CONTENT GAP ANALYZER FOR %s\n", strings.ToUpper(s.TargetDomain))
	m.println(rule)
	m.println("1. Manage competitors")
	m.println("2. Manage treatment keywords (keyword filter)")
	m.println("3. Manage target domain")
	m.println("4. Settings")
	m.println("5. Run content gap analysis")
	m.println("6. Show status")
	m.println("7. Exit")
	m.println(rule)
}

func (m *Menu) competitors() error {
	for {
		m.header("COMPETITORS")
		m.println("1. Show current competitors")
		m.println("2. Add competitor")
		m.println("3. Remove competitor")
		m.println("4. Set new competitor list")
		m.println("5. Back to main menu")

		choice, err := m.prompt("\nChoose (1-5): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			m.list("Competitors", m.editor.Settings().Competitors)
		case "2":
			domain, err := m.prompt("Enter competitor domain (e.g. example.com): ")
			if err != nil {
				return err
			}
			m.report(m.editor.AddCompetitor(domain), "Added competitor: "+domain)
		case "3":
			m.list("Competitors", m.editor.Settings().Competitors)
			domain, err := m.prompt("Enter domain to remove: ")
			if err != nil {
				return err
			}
			m.report(m.editor.RemoveCompetitor(domain), "Removed competitor: "+domain)
		case "4":
			m.println("Enter competitor domains (one per line, empty line to finish):")
			domains, err := m.lines()
			if err != nil {
				return err
			}
			m.report(m.editor.SetCompetitors(domains), fmt.Sprintf("Competitor list set (%d domains)", len(m.editor.Settings().Competitors)))
		case "5":
			return nil
		default:
			m.println("Invalid choice. Try again.")
		}
	}
}

func (m *Menu) treatments() error {
	for {
		m.header("TREATMENT KEYWORDS")
		m.println("1. Show current treatment keywords")
		m.println("2. Add treatment keyword")
		m.println("3. Remove treatment keyword")
		m.println("4. Select treatment categories")
		m.println("5. Toggle keyword filtering")
		m.println("6. Back to main menu")

		choice, err := m.prompt("\nChoose (1-6): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			m.showTreatments()
		case "2":
			kw, err := m.prompt("Enter treatment keyword: ")
			if err != nil {
				return err
			}
			m.report(m.editor.AddTreatmentKeyword(kw), "Added keyword: "+kw)
		case "3":
			kw, err := m.prompt("Enter keyword to remove: ")
			if err != nil {
				return err
			}
			m.report(m.editor.RemoveTreatmentKeyword(kw), "Removed keyword: "+kw)
		case "4":
			if err := m.selectCategories(); err != nil {
				return err
			}
		case "5":
			m.printf("Keyword filtering is now %s\n", onOff(m.editor.ToggleFilter()))
		case "6":
			return nil
		default:
			m.println("Invalid choice. Try again.")
		}
	}
}

func (m *Menu) showTreatments() {
	s := m.editor.Settings()
	m.printf("\nKeyword filtering: %s\n", onOff(s.FilterKeywords))
	if len(s.TreatmentKeywords) == 0 {
		m.println("No treatment keywords.")
		return
	}
	for _, g := range m.opts.Catalog.Group(s.TreatmentKeywords) {
		m.printf("\n%s (%d):\n", g.Name, len(g.Keywords))
		for _, kw := range g.Keywords {
			m.printf("  - %s\n", kw)
		}
	}
}

func (m *Menu) selectCategories() error {
	m.header("SELECT TREATMENT CATEGORIES")
	for i, c := range m.opts.Catalog {
		m.printf("%d. %s (%d keywords)\n", i+1, c.Name, len(c.Keywords))
	}
	selection, err := m.prompt("\nSelect categories (e.g. 1,3,5 or 'all'): ")
	if err != nil {
		return err
	}

	keywords, names, err := m.opts.Catalog.Select(selection)
	if err != nil {
		m.println("No valid categories selected")
		return nil
	}
	for _, n := range names {
		m.printf("Added: %s\n", n)
	}
	m.report(m.editor.SetTreatmentKeywords(keywords), fmt.Sprintf("Treatment keywords set (%d keywords)", len(keywords)))
	return nil
}

func (m *Menu) target() error {
	for {
		m.header("TARGET DOMAIN")
		m.println("1. Show current target domain")
		m.println("2. Change target domain")
		m.println("3. Back to main menu")

		choice, err := m.prompt("\nChoose (1-3): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			m.printf("Target domain: %s\n", m.editor.Settings().TargetDomain)
		case "2":
			m.printf("Current target domain: %s\n", m.editor.Settings().TargetDomain)
			domain, err := m.prompt("Enter new target domain (e.g. example.com): ")
			if err != nil {
				return err
			}
			m.report(m.editor.SetTargetDomain(domain), "Target domain changed to: "+strings.TrimSpace(domain))
		case "3":
			return nil
		default:
			m.println("Invalid choice. Try again.")
		}
	}
}

func (m *Menu) settingsMenu() error {
	m.header("SETTINGS")
	m.println("1. Toggle keyword filtering")
	m.println("2. Show API status")
	m.println("3. Back to main menu")

	choice, err := m.prompt("\nChoose (1-3): ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		m.printf("Keyword filtering is now %s\n", onOff(m.editor.ToggleFilter()))
	case "2":
		if m.opts.CredentialsLoaded {
			m.println("API credentials loaded")
		} else {
			m.println("API credentials missing (set DATAFORSEO_LOGIN and DATAFORSEO_PASSWORD)")
		}
		m.printf("Target domain: %s\n", m.editor.Settings().TargetDomain)
	case "3":
	default:
		m.println("Invalid choice")
	}
	return nil
}

func (m *Menu) analyze(ctx context.Context) {
	m.println("\nStarting content gap analysis...")

	res, err := m.runner.Run(ctx, m.editor.Settings())
	if err != nil {
		m.log.Error("analysis failed", zap.Error(err))
		m.printf("Analysis failed: %v\n", err)
		return
	}

	write := m.opts.Report
	if write == nil {
		m.println("No report writer configured")
		return
	}
	if err := write(m.opts.Output, res); err != nil {
		m.log.Error("writing report failed", zap.String("path", m.opts.Output), zap.Error(err))
		m.printf("Analysis failed: %v\n", err)
		return
	}

	Summary(m.out, res)
	m.printf("\nAnalysis complete! Check '%s'.\n", m.opts.Output)
}

func (m *Menu) status() {
	Status(m.out, m.editor.Settings(), m.opts.SettingsPath)
}

// Status prints a summary of s.
func Status(w io.Writer, s *settings.Settings, path string) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "    CURRENT STATUS")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Target domain: %s\n", s.TargetDomain)
	fmt.Fprintf(w, "Keyword filtering: %s\n", onOff(s.FilterKeywords))
	fmt.Fprintf(w, "Competitors: %d\n", len(s.Competitors))
	fmt.Fprintf(w, "Treatment keywords: %d\n", len(s.TreatmentKeywords))
	fmt.Fprintf(w, "Settings file: %s\n", path)
	if s.LastUpdated != "" {
		fmt.Fprintf(w, "Last updated: %s\n", s.LastUpdated)
	}

	fmt.Fprintln(w, "\nCompetitors:")
	for i, c := range s.Competitors {
		fmt.Fprintf(w, "  %d. %s\n", i+1, c)
	}

	if s.FilterKeywords {
		fmt.Fprintf(w, "\nKeyword filtering active: %d treatment terms\n", len(s.TreatmentKeywords))
	} else {
		fmt.Fprintln(w, "\nKeyword filtering inactive: analyzing all keywords")
	}
}

// Summary prints per-domain keyword counts and the top gaps of res.
func Summary(w io.Writer, res *analyzer.Result) {
	fmt.Fprintf(w, "\nTarget %s: %d keywords", res.Target.Domain, len(res.Target.Keywords))
	if res.Filtered {
		fmt.Fprintf(w, " (of %d)", res.Target.Total)
	}
	fmt.Fprintln(w)
	for _, c := range res.Competitors {
		if c.Error != "" {
			fmt.Fprintf(w, "  %s: failed (%s)\n", c.Domain, c.Error)
			continue
		}
		fmt.Fprintf(w, "  %s: %d keywords, %d gaps\n", c.Domain, len(c.Keywords), len(res.Gaps[c.Domain]))
	}

	counts := gap.CountByTier(res.Ranked)
	fmt.Fprintf(w, "\nContent gaps: %d (HIGH %d, MEDIUM %d, LOW %d)\n",
		len(res.Ranked), counts[gap.TierHigh], counts[gap.TierMedium], counts[gap.TierLow])

	top := res.Ranked
	if len(top) > 10 {
		top = top[:10]
	}
	for i, g := range top {
		fmt.Fprintf(w, "%2d. %-40s %6d  %5.2f  %-6s %s\n",
			i+1, g.Keyword.Keyword, g.Keyword.SearchVolume, g.Score, g.Tier, g.Competitor)
	}
}

func (m *Menu) prompt(text string) (string, error) {
	m.printf("%s", text)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", eris.Wrap(err, "menu: read input")
		}
		return "", errQuit
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) lines() ([]string, error) {
	var out []string
	for {
		line, err := m.prompt("")
		if err != nil {
			return nil, err
		}
		if line == "" {
			return out, nil
		}
		out = append(out, line)
	}
}

// report prints ok on success and a readable message for editor errors.
func (m *Menu) report(err error, ok string) {
	switch {
	case err == nil:
		m.println(ok)
	case eris.Is(err, settings.ErrEmpty):
		m.println("Nothing entered")
	case eris.Is(err, settings.ErrExists):
		m.println("Already in the list")
	case eris.Is(err, settings.ErrNotFound):
		m.println("Not in the list")
	default:
		m.printf("Error: %v\n", err)
	}
}

func (m *Menu) list(title string, items []string) {
	m.printf("\n%s (%d):\n", title, len(items))
	for i, it := range items {
		m.printf("  %d. %s\n", i+1, it)
	}
}

func (m *Menu) header(title string) {
	rule := strings.Repeat("-", 40)
	m.println("\n" + rule)
	m.println("    " + title)
	m.println(rule)
}

func (m *Menu) println(s string) { fmt.Fprintln(m.out, s) }

func (m *Menu) printf(format string, args ...any) { fmt.Fprintf(m.out, format, args...) }

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
