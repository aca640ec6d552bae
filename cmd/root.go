package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cosmolaser/content-gap/internal/analyzer"
	"github.com/cosmolaser/content-gap/internal/config"
	"github.com/cosmolaser/content-gap/internal/cost"
	"github.com/cosmolaser/content-gap/internal/settings"
	"github.com/cosmolaser/content-gap/pkg/dataforseo"
)

var cfg *config.Config

// spend records the API cost of the running command.
var spend *cost.Ledger

var rootCmd = &cobra.Command{
	Use:          "content-gap",
	Short:        "SEO content gap analysis against competitor domains",
	Long:         "Fetches ranked keywords for a target domain and its competitors from DataForSEO, finds the keywords competitors rank for that the target does not, scores them by priority and writes an Excel report.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		spend = nil

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadEditor loads the settings file, falling back to defaults, and returns
// an editor that saves back to it.
func loadEditor() *settings.Editor {
	store := settings.NewStore(cfg.Settings.Path)
	s, found, err := store.Load(settings.Defaults(cfg.Settings.TargetDomain))
	switch {
	case err != nil:
		zap.L().Warn("settings file unreadable, using defaults",
			zap.String("path", store.Path()),
			zap.Error(err),
		)
	case !found:
		zap.L().Debug("no settings file, using defaults", zap.String("path", store.Path()))
	}
	return settings.NewEditor(s, store)
}

// newClient builds the DataForSEO client from config. Every call it makes is
// charged to spend.
func newClient() (dataforseo.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := cfg.DataForSEO
	client := dataforseo.NewClient(d.Login, d.Password,
		dataforseo.WithBaseURL(d.BaseURL),
		dataforseo.WithHTTPClient(&http.Client{Timeout: time.Duration(d.TimeoutSecs) * time.Second}),
		dataforseo.WithLocation(d.LocationCode),
		dataforseo.WithLanguage(d.LanguageCode),
	)
	spend = cost.NewLedger(d.MaxCost)
	return cost.Track(client, spend), nil
}

// printCost prints the API spend of this command, if any calls were made.
func printCost(out io.Writer) {
	if spend == nil {
		return
	}
	entries := spend.Entries()
	if len(entries) == 0 {
		return
	}
	var calls int
	for _, e := range entries {
		calls += e.Calls
	}
	fmt.Fprintf(out, "API cost: $%.4f (%d calls)\n", spend.Total(), calls)
}

// newAnalyzer builds an analyzer over a configured client.
func newAnalyzer() (*analyzer.Analyzer, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	var opts []analyzer.Option
	if cfg.DataForSEO.Limit > 0 {
		opts = append(opts, analyzer.WithLimit(cfg.DataForSEO.Limit))
	}
	return analyzer.New(client, opts...), nil
}
