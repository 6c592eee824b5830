// Package report handles the report generation commands
package report

import (
	"github.com/daud-shahbaz/pywallet/cmd/root"
	reportpkg "github.com/daud-shahbaz/pywallet/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate monthly or yearly financial reports",
	Long:  `Build a full report (spending summary, budget performance, top expenses, insights and month-over-month comparison) and print or export it as JSON.`,
	Run:   reportFunc,
}

var (
	year       int
	month      int
	yearly     bool
	outputPath string
)

func init() {
	Cmd.Flags().IntVarP(&year, "year", "y", 0, "Report year (default: current)")
	Cmd.Flags().IntVarP(&month, "month", "m", 0, "Report month 1-12 (default: current)")
	Cmd.Flags().BoolVar(&yearly, "yearly", false, "Generate a full-year report instead")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to this JSON file")
}

func reportFunc(cmd *cobra.Command, args []string) {
	generator := reportpkg.NewGenerator(root.Cfg, root.Store())

	var result interface{}
	var err error
	if yearly {
		result, err = generator.Yearly(year)
	} else {
		result, err = generator.Monthly(year, month)
	}
	if err != nil {
		root.Log.Errorf("Report generation failed: %v", err)
		return
	}

	if outputPath != "" {
		path, err := generator.Export(result, outputPath)
		if err != nil {
			root.Log.Errorf("Report export failed: %v", err)
			return
		}
		root.Log.Infof("Report written to %s", path)
		return
	}
	root.PrintJSON(result)
}
