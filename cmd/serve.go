package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cosmolaser/content-gap/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve settings and analyses over an HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newAnalyzer()
		if err != nil {
			return err
		}

		srv := server.New(loadEditor(), a)
		if err := srv.ListenAndServe(ctx, resolvePort(servePort, cfg.Server.Port)); err != nil {
			return err
		}
		printCost(cmd.OutOrStdout())
		return nil
	},
}

// resolvePort prefers the flag value over config.
func resolvePort(flag, configured int) int {
	if flag != 0 {
		return flag
	}
	return configured
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
