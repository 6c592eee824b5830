// Package summary handles the analytics summary commands
package summary

import (
	"github.com/daud-shahbaz/pywallet/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Spending summaries by day, month, category or date range",
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Summary for one calendar day",
	Run:   dailyFunc,
}

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Summary for one calendar month",
	Run:   monthlyFunc,
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Per-category statistics over a date range",
	Run:   categoryFunc,
}

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Comprehensive summary over a date range",
	Run:   rangeFunc,
}

var (
	date      string
	year      int
	month     int
	startDate string
	endDate   string
)

func init() {
	dailyCmd.Flags().StringVarP(&date, "date", "d", "", "Day to summarize (YYYY-MM-DD, default: today)")

	monthlyCmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default: current)")
	monthlyCmd.Flags().IntVarP(&month, "month", "m", 0, "Month 1-12 (default: current)")

	categoryCmd.Flags().StringVar(&startDate, "start", "", "Earliest date (YYYY-MM-DD)")
	categoryCmd.Flags().StringVar(&endDate, "end", "", "Latest date (YYYY-MM-DD)")

	rangeCmd.Flags().StringVar(&startDate, "start", "", "Earliest date (YYYY-MM-DD)")
	rangeCmd.Flags().StringVar(&endDate, "end", "", "Latest date (YYYY-MM-DD)")
	_ = rangeCmd.MarkFlagRequired("start")
	_ = rangeCmd.MarkFlagRequired("end")

	Cmd.AddCommand(dailyCmd)
	Cmd.AddCommand(monthlyCmd)
	Cmd.AddCommand(categoryCmd)
	Cmd.AddCommand(rangeCmd)
}

func dailyFunc(cmd *cobra.Command, args []string) {
	summary, err := root.Engine().Daily(date)
	if err != nil {
		root.Log.Errorf("Daily summary failed: %v", err)
		return
	}
	root.PrintJSON(summary)
}

func monthlyFunc(cmd *cobra.Command, args []string) {
	summary, err := root.Engine().Monthly(year, month)
	if err != nil {
		root.Log.Errorf("Monthly summary failed: %v", err)
		return
	}
	root.PrintJSON(summary)
}

func categoryFunc(cmd *cobra.Command, args []string) {
	root.PrintJSON(root.Engine().CategorySummary(startDate, endDate))
}

func rangeFunc(cmd *cobra.Command, args []string) {
	summary, err := root.Engine().DateRange(startDate, endDate)
	if err != nil {
		root.Log.Errorf("Range summary failed: %v", err)
		return
	}
	root.PrintJSON(summary)
}
