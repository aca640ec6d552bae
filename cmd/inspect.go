package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cosmolaser/content-gap/internal/model"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <domain>",
	Short: "Show the first ranked keywords of one domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newAnalyzer()
		if err != nil {
			return err
		}

		s := loadEditor().Settings().Clone()
		if cmd.Flags().Changed("filter") {
			s.FilterKeywords, _ = cmd.Flags().GetBool("filter")
		}
		limit, _ := cmd.Flags().GetInt("limit")

		dk := a.Inspect(ctx, s, args[0])
		if dk.Error != "" {
			return eris.Errorf("inspect %s: %s", dk.Domain, dk.Error)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d keywords", dk.Domain, dk.Total)
		if s.FilterKeywords {
			fmt.Fprintf(out, ", %d relevant", len(dk.Keywords))
		}
		fmt.Fprintln(out)
		if err := printKeywords(out, dk.Keywords, limit, true); err != nil {
			return err
		}
		printCost(out)
		return nil
	},
}

var ideasCmd = &cobra.Command{
	Use:   "ideas <seed>...",
	Short: "Suggest keywords related to seed terms",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newAnalyzer()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		ideas, err := a.Ideas(ctx, parseList(args), limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := printKeywords(out, ideas, limit, false); err != nil {
			return err
		}
		printCost(out)
		return nil
	},
}

// printKeywords prints up to limit keywords as a table. A limit of zero or
// less prints them all.
func printKeywords(out io.Writer, keywords []model.Keyword, limit int, ranked bool) error {
	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if ranked {
		fmt.Fprintln(w, "KEYWORD\tRANK\tVOLUME\tCOMPETITION\tCPC\tURL")
	} else {
		fmt.Fprintln(w, "KEYWORD\tVOLUME\tCOMPETITION\tCPC\tLEVEL")
	}
	for _, k := range keywords {
		if ranked {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t%.2f\t%s\n",
				k.Keyword, k.Rank, k.SearchVolume, k.Competition, k.CPC, k.URL)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.2f\t%s\n",
			k.Keyword, k.SearchVolume, k.Competition, k.CPC, k.CompetitionLevel)
	}
	return w.Flush()
}

func init() {
	inspectCmd.Flags().Int("limit", 20, "keywords to print")
	inspectCmd.Flags().Bool("filter", true, "limit to treatment keywords (default from settings)")
	ideasCmd.Flags().Int("limit", 50, "ideas to request")

	rootCmd.AddCommand(inspectCmd, ideasCmd)
}
