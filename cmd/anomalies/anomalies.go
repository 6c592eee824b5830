// Package anomalies handles the anomaly detection commands
package anomalies

import (
	"github.com/daud-shahbaz/pywallet/cmd/root"
	"github.com/daud-shahbaz/pywallet/internal/ml"

	"github.com/spf13/cobra"
)

// Cmd represents the anomalies command
var Cmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Find unusually large transactions",
	Long:  `Flag transactions far above their category's historical average using z-scores.`,
	Run:   anomaliesFunc,
}

var recentDays int

func init() {
	Cmd.Flags().IntVarP(&recentDays, "recent", "r", 0, "Only check the last N days (0: full history)")
}

func anomaliesFunc(cmd *cobra.Command, args []string) {
	detector := ml.NewAnomalyDetector(root.Cfg, root.Store())

	if recentDays > 0 {
		root.PrintJSON(detector.FlagRecent(recentDays))
		return
	}

	report, err := detector.Detect()
	if err != nil {
		root.Log.Errorf("Anomaly detection failed: %v", err)
		return
	}
	root.PrintJSON(report)
}
