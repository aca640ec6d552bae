package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cosmolaser/content-gap/internal/analyzer"
	"github.com/cosmolaser/content-gap/internal/menu"
	"github.com/cosmolaser/content-gap/internal/report"
	"github.com/cosmolaser/content-gap/internal/settings"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Manage settings and run analyses from a numbered menu",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		editor := loadEditor()
		credsErr := cfg.Validate()

		var runner menu.Runner = unconfiguredRunner{err: credsErr}
		if credsErr == nil {
			a, err := newAnalyzer()
			if err != nil {
				return err
			}
			runner = a
		}

		m := menu.New(cmd.InOrStdin(), cmd.OutOrStdout(), editor, runner, menu.Options{
			Output:            cfg.Report.Output,
			SettingsPath:      cfg.Settings.Path,
			CredentialsLoaded: credsErr == nil,
			Report:            report.WriteFile,
		})
		if err := m.Run(ctx); err != nil {
			return err
		}
		printCost(cmd.OutOrStdout())
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a content gap analysis with the saved settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = cfg.Report.Output
		}

		var filter *bool
		if cmd.Flags().Changed("filter") {
			v, _ := cmd.Flags().GetBool("filter")
			filter = &v
		}
		return runAnalysis(cmd, output, filter)
	},
}

var filteredCmd = &cobra.Command{
	Use:   "filtered",
	Short: "Run a content gap analysis limited to treatment keywords",
	RunE: func(cmd *cobra.Command, _ []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = cfg.Report.FilteredOutput
		}
		on := true
		return runAnalysis(cmd, output, &on)
	},
}

// runAnalysis runs one analysis and writes the report. A non-nil filter
// overrides the saved flag for this run only.
func runAnalysis(cmd *cobra.Command, output string, filter *bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newAnalyzer()
	if err != nil {
		return err
	}

	s := loadEditor().Settings().Clone()
	if filter != nil {
		s.FilterKeywords = *filter
	}
	if s.FilterKeywords && len(s.TreatmentKeywords) == 0 {
		zap.L().Warn("keyword filtering is on but no treatment keywords are set; every keyword will be dropped")
	}

	res, err := a.Run(ctx, s)
	if err != nil {
		return err
	}
	if err := report.WriteFile(output, res); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	menu.Summary(out, res)
	fmt.Fprintf(out, "\nReport written to %s\n", output)
	printCost(out)
	return nil
}

// unconfiguredRunner lets the menu start without credentials and reports the
// problem when an analysis is attempted.
type unconfiguredRunner struct{ err error }

func (u unconfiguredRunner) Run(_ context.Context, _ *settings.Settings) (*analyzer.Result, error) {
	return nil, u.err
}

func init() {
	analyzeCmd.Flags().String("output", "", "report path (default from config)")
	analyzeCmd.Flags().Bool("filter", true, "limit to treatment keywords (default from settings)")
	filteredCmd.Flags().String("output", "", "report path (default from config)")

	rootCmd.AddCommand(interactiveCmd, analyzeCmd, filteredCmd)
}
