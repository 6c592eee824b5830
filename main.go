package main

import (
	"fmt"
	"os"

	"github.com/daud-shahbaz/pywallet/cmd/anomalies"
	"github.com/daud-shahbaz/pywallet/cmd/budget"
	"github.com/daud-shahbaz/pywallet/cmd/classify"
	"github.com/daud-shahbaz/pywallet/cmd/cluster"
	"github.com/daud-shahbaz/pywallet/cmd/coach"
	"github.com/daud-shahbaz/pywallet/cmd/expense"
	"github.com/daud-shahbaz/pywallet/cmd/forecast"
	"github.com/daud-shahbaz/pywallet/cmd/insights"
	"github.com/daud-shahbaz/pywallet/cmd/report"
	"github.com/daud-shahbaz/pywallet/cmd/root"
	"github.com/daud-shahbaz/pywallet/cmd/summary"
	"github.com/daud-shahbaz/pywallet/cmd/transfer"
	"github.com/daud-shahbaz/pywallet/cmd/trends"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(expense.Cmd)
	root.Cmd.AddCommand(transfer.ImportCmd)
	root.Cmd.AddCommand(transfer.ExportCmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(trends.Cmd)
	root.Cmd.AddCommand(forecast.Cmd)
	root.Cmd.AddCommand(forecast.TrajectoryCmd)
	root.Cmd.AddCommand(anomalies.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(cluster.Cmd)
	root.Cmd.AddCommand(cluster.CompareCmd)
	root.Cmd.AddCommand(insights.Cmd)
	root.Cmd.AddCommand(coach.Cmd)
	root.Cmd.AddCommand(report.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
