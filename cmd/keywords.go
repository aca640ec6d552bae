package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmolaser/content-gap/internal/settings"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manage treatment keywords used to filter results",
}

// -- keywords list --

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List treatment keywords grouped by category",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		s := loadEditor().Settings()

		fmt.Fprintf(out, "Keyword filtering: %s\n", onOff(s.FilterKeywords))
		if len(s.TreatmentKeywords) == 0 {
			fmt.Fprintln(out, "No treatment keywords.")
			return nil
		}
		for _, g := range settings.Categories().Group(s.TreatmentKeywords) {
			fmt.Fprintf(out, "\n%s (%d):\n", g.Name, len(g.Keywords))
			for _, kw := range g.Keywords {
				fmt.Fprintf(out, "  - %s\n", kw)
			}
		}
		return nil
	},
}

// -- keywords add --

var keywordsAddCmd = &cobra.Command{
	Use:   "add <keyword>...",
	Short: "Add treatment keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := loadEditor()
		return eachArg(cmd.OutOrStdout(), args, "Added", e.AddTreatmentKeyword)
	},
}

// -- keywords remove --

var keywordsRemoveCmd = &cobra.Command{
	Use:   "remove <keyword>...",
	Short: "Remove treatment keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := loadEditor()
		return eachArg(cmd.OutOrStdout(), args, "Removed", e.RemoveTreatmentKeyword)
	},
}

// -- keywords set --

var keywordsSetCmd = &cobra.Command{
	Use:   "set <keyword>[,<keyword>]...",
	Short: "Replace the treatment keyword list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := loadEditor()
		if err := e.SetTreatmentKeywords(parseList(args)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Treatment keywords set (%d keywords)\n", len(e.Settings().TreatmentKeywords))
		return nil
	},
}

// -- keywords categories --

var keywordsCategoriesCmd = &cobra.Command{
	Use:   "categories [selection]",
	Short: "List treatment categories, or select them (e.g. 1,3 or all)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		catalog := settings.Categories()

		if len(args) == 0 {
			for i, c := range catalog {
				fmt.Fprintf(out, "%d. %s (%d keywords)\n", i+1, c.Name, len(c.Keywords))
			}
			return nil
		}

		keywords, names, err := catalog.Select(args[0])
		if err != nil {
			return err
		}
		e := loadEditor()
		if err := e.SetTreatmentKeywords(keywords); err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintf(out, "Added: %s\n", n)
		}
		fmt.Fprintf(out, "Treatment keywords set (%d keywords)\n", len(keywords))
		return nil
	},
}

// -- keywords toggle --

var keywordsToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Turn keyword filtering on or off",
	RunE: func(cmd *cobra.Command, _ []string) error {
		on := loadEditor().ToggleFilter()
		fmt.Fprintf(cmd.OutOrStdout(), "Keyword filtering is now %s\n", onOff(on))
		return nil
	},
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func init() {
	keywordsCmd.AddCommand(
		keywordsListCmd,
		keywordsAddCmd,
		keywordsRemoveCmd,
		keywordsSetCmd,
		keywordsCategoriesCmd,
		keywordsToggleCmd,
	)
	rootCmd.AddCommand(keywordsCmd)
}
