package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmolaser/content-gap/internal/menu"
	"github.com/cosmolaser/content-gap/internal/report"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Show or change the target domain",
}

var targetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the target domain",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "Target domain: %s\n", loadEditor().Settings().TargetDomain)
		return nil
	},
}

var targetSetCmd = &cobra.Command{
	Use:   "set <domain>",
	Short: "Change the target domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := loadEditor()
		if err := e.SetTargetDomain(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Target domain changed to: %s\n", e.Settings().TargetDomain)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		menu.Status(cmd.OutOrStdout(), loadEditor().Settings(), cfg.Settings.Path)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Summarize the sheets of a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheets, err := report.Summarize(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, s := range sheets {
			fmt.Fprintf(out, "%-31s %6d rows\n", s.Name, s.Rows)
		}
		return nil
	},
}

func init() {
	targetCmd.AddCommand(targetShowCmd, targetSetCmd)
	rootCmd.AddCommand(targetCmd, statusCmd, reportCmd)
}
