package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"macrotracker/internal/logging"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage login sessions",
}

var sessionCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete expired sessions",
	Run:   runSessionCleanup,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionCleanupCmd)
}

func runSessionCleanup(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	a := newApp(ctx)
	defer a.Close()

	n, err := a.auth.CleanupExpiredSessions(ctx)
	if err != nil {
		logging.CLI().WithError(err).Fatal("Failed to clean up sessions")
	}
	fmt.Printf("Removed %d expired session(s)\n", n)
}
