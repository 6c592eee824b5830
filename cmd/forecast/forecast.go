// Package forecast handles the spending prediction commands
package forecast

import (
	"github.com/daud-shahbaz/pywallet/cmd/root"
	"github.com/daud-shahbaz/pywallet/internal/ml"

	"github.com/spf13/cobra"
)

// Cmd represents the forecast command
var Cmd = &cobra.Command{
	Use:   "forecast",
	Short: "Predict next month's spending per category",
	Long:  `Fit a regression over recent monthly totals per category and predict next month's spending with a confidence score.`,
	Run:   forecastFunc,
}

// TrajectoryCmd represents the trajectory command
var TrajectoryCmd = &cobra.Command{
	Use:   "trajectory",
	Short: "Project a category's spending several months ahead",
	Run:   trajectoryFunc,
}

var category string

func init() {
	TrajectoryCmd.Flags().StringVarP(&category, "category", "c", "", "Category to project")
	_ = TrajectoryCmd.MarkFlagRequired("category")
}

func forecastFunc(cmd *cobra.Command, args []string) {
	report, err := ml.NewSpendingPredictor(root.Cfg, root.Store()).PredictNextMonth()
	if err != nil {
		root.Log.Errorf("Forecast failed: %v", err)
		return
	}
	root.PrintJSON(report)
}

func trajectoryFunc(cmd *cobra.Command, args []string) {
	report, err := ml.NewSpendingPredictor(root.Cfg, root.Store()).Trajectory(category)
	if err != nil {
		root.Log.Errorf("Trajectory failed: %v", err)
		return
	}
	root.PrintJSON(report)
}
