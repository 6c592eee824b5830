// Package insights handles the combined ML insight command
package insights

import (
	"github.com/daud-shahbaz/pywallet/cmd/root"
	"github.com/daud-shahbaz/pywallet/internal/ml"

	"github.com/spf13/cobra"
)

// Cmd represents the insights command
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate combined predictions, anomalies, clustering and advice",
	Long:  `Run every ML component that has enough data and combine the results with budget- and trend-based recommendations.`,
	Run:   insightsFunc,
}

func insightsFunc(cmd *cobra.Command, args []string) {
	root.PrintJSON(ml.NewInsightGenerator(root.Cfg, root.Store()).GenerateInsights())
}
