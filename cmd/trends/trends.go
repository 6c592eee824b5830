// Package trends handles the trend detection command
package trends

import (
	"github.com/daud-shahbaz/pywallet/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the trends command
var Cmd = &cobra.Command{
	Use:   "trends",
	Short: "Detect per-category spending trends",
	Long:  `Compare monthly spending per category over a lookback window and report increasing or decreasing trends.`,
	Run:   trendsFunc,
}

var months int

func init() {
	Cmd.Flags().IntVarP(&months, "months", "m", 3, "Lookback window in months")
}

func trendsFunc(cmd *cobra.Command, args []string) {
	root.PrintJSON(root.Engine().DetectTrends(months))
}
