package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"macrotracker/internal/logging"
	"macrotracker/internal/models"
	"macrotracker/internal/repository"
	"macrotracker/internal/services"
)

var historyCmd = &cobra.Command{
	Use:   "history [email]",
	Short: "Print daily totals for a user",
	Long:  "Print calories and macronutrient totals for the most recent dates on which the user logged meals.",
	Args:  cobra.ExactArgs(1),
	Run:   runHistory,
}

var (
	historyDays int
	historyJSON bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", services.HistoryLimit, "Number of dates to show (at most 14)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print JSON instead of a table")
}

func runHistory(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	a := newApp(ctx)
	defer a.Close()

	user, err := a.users.GetByEmail(ctx, args[0])
	if errors.Is(err, repository.ErrNotFound) {
		logging.CLI().Fatalf("User not found: %s", args[0])
	}
	if err != nil {
		logging.CLI().WithError(err).Fatal("Failed to look up user")
	}

	history, err := a.totals.History(ctx, user.ID, historyDays)
	if err != nil {
		logging.CLI().WithError(err).Fatal("Failed to compute history")
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(history); err != nil {
			logging.CLI().WithError(err).Fatal("Failed to encode history")
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "DATE\tKCAL\tPROTEIN\tCARBS\tFAT\t")
	for _, h := range history {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t\n",
			models.FormatDay(h.Date), h.Totals.Calories, h.Totals.Protein, h.Totals.Carbs, h.Totals.Fat)
	}
	w.Flush()
}
