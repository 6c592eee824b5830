// Package transfer handles CSV import and export commands
package transfer

import (
	"github.com/daud-shahbaz/pywallet/cmd/root"

	"github.com/spf13/cobra"
)

// ImportCmd represents the import command
var ImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import expenses from a CSV file",
	Long:  `Import expense records from a CSV file with amount, category, date and optional note columns.`,
	Run:   importFunc,
}

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all expenses to a CSV file",
	Run:   exportFunc,
}

var (
	importPath string
	exportPath string
)

func init() {
	ImportCmd.Flags().StringVarP(&importPath, "input", "i", "", "CSV file to import")
	_ = ImportCmd.MarkFlagRequired("input")

	ExportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "Output CSV path (default: data/expenses_export.csv)")
}

func importFunc(cmd *cobra.Command, args []string) {
	count, err := root.Store().ImportCSV(importPath)
	if err != nil {
		root.Log.Errorf("Import failed: %v", err)
		return
	}
	root.Log.Infof("Imported %d expenses from %s", count, importPath)
}

func exportFunc(cmd *cobra.Command, args []string) {
	count, err := root.Store().ExportCSV(exportPath)
	if err != nil {
		root.Log.Errorf("Export failed: %v", err)
		return
	}
	root.Log.Infof("Exported %d expenses", count)
}
