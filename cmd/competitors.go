package main

import (
	"fmt"
	"io"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cosmolaser/content-gap/internal/settings"
)

var competitorsCmd = &cobra.Command{
	Use:   "competitors",
	Short: "Manage competitor domains",
}

// -- competitors list --

var competitorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List competitor domains",
	RunE: func(cmd *cobra.Command, _ []string) error {
		printList(cmd.OutOrStdout(), "Competitors", loadEditor().Settings().Competitors)
		return nil
	},
}

// -- competitors add --

var competitorsAddCmd = &cobra.Command{
	Use:   "add <domain>...",
	Short: "Add competitor domains",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := loadEditor()
		return eachArg(cmd.OutOrStdout(), args, "Added", e.AddCompetitor)
	},
}

// -- competitors remove --

var competitorsRemoveCmd = &cobra.Command{
	Use:   "remove <domain>...",
	Short: "Remove competitor domains",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := loadEditor()
		return eachArg(cmd.OutOrStdout(), args, "Removed", e.RemoveCompetitor)
	},
}

// -- competitors set --

var competitorsSetCmd = &cobra.Command{
	Use:   "set <domain>[,<domain>]...",
	Short: "Replace the competitor list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := loadEditor()
		if err := e.SetCompetitors(parseList(args)); err != nil {
			return err
		}
		printList(cmd.OutOrStdout(), "Competitors", e.Settings().Competitors)
		return nil
	},
}

// -- competitors suggest --

var competitorsSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show curated laser clinic competitors",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		e := loadEditor()

		current := e.Settings().Competitors
		fmt.Fprintln(out, "Suggested competitors:")
		for i, d := range settings.SuggestedCompetitors {
			mark := ""
			if slices.Contains(current, d) {
				mark = " (current)"
			}
			fmt.Fprintf(out, "  %d. %s%s\n", i+1, d, mark)
		}

		apply, _ := cmd.Flags().GetBool("apply")
		if !apply {
			fmt.Fprintln(out, "\nRun with --apply to use the laser clinic list.")
			return nil
		}
		if err := e.SetCompetitors(settings.LaserCompetitors); err != nil {
			return err
		}
		printList(out, "Competitors", e.Settings().Competitors)
		return nil
	},
}

// -- competitors discover --

var competitorsDiscoverCmd = &cobra.Command{
	Use:   "discover [domain]",
	Short: "Find domains competing for the same keywords",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newAnalyzer()
		if err != nil {
			return err
		}

		domain := loadEditor().Settings().TargetDomain
		if len(args) == 1 {
			domain = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")

		found, err := a.DiscoverCompetitors(ctx, domain, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(found) == 0 {
			fmt.Fprintf(out, "No competitors found for %s.\n", domain)
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DOMAIN\tSHARED KEYWORDS\tAVG POSITION")
		for _, c := range found {
			fmt.Fprintf(w, "%s\t%d\t%.1f\n", c.Domain, c.Intersections, c.AvgPosition)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		printCost(out)
		return nil
	},
}

// eachArg applies fn to every argument, printing a line per success. It
// stops at the first error.
func eachArg(out io.Writer, args []string, verb string, fn func(string) error) error {
	for _, a := range args {
		if err := fn(a); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", verb, strings.TrimSpace(a))
	}
	return nil
}

func printList(out io.Writer, title string, items []string) {
	fmt.Fprintf(out, "%s (%d):\n", title, len(items))
	for i, it := range items {
		fmt.Fprintf(out, "  %d. %s\n", i+1, it)
	}
}

// parseList splits comma separated args into trimmed, non-empty values.
func parseList(args []string) []string {
	var out []string
	for _, a := range args {
		for _, p := range strings.Split(a, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func init() {
	competitorsSuggestCmd.Flags().Bool("apply", false, "replace competitors with the laser clinic list")
	competitorsDiscoverCmd.Flags().Int("limit", 20, "maximum domains to return")

	competitorsCmd.AddCommand(
		competitorsListCmd,
		competitorsAddCmd,
		competitorsRemoveCmd,
		competitorsSetCmd,
		competitorsSuggestCmd,
		competitorsDiscoverCmd,
	)
	rootCmd.AddCommand(competitorsCmd)
}
