// Package budget handles the budget alert command
package budget

import (
	"github.com/daud-shahbaz/pywallet/cmd/root"
	"github.com/daud-shahbaz/pywallet/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the budget command
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Check current-month spending against budgets",
	Long:  `Compare this month's spending per category against the configured budget limits and report warnings and overruns.`,
	Run:   budgetFunc,
}

var budgetsFile string

func init() {
	Cmd.Flags().StringVarP(&budgetsFile, "budgets", "b", "", "Budgets YAML file (default: configured budgets.yaml)")
}

func budgetFunc(cmd *cobra.Command, args []string) {
	budgets, err := store.NewBudgetStore(budgetsFile, "").LoadBudgets()
	if err != nil {
		root.Log.Errorf("Failed to load budgets: %v", err)
		return
	}
	root.PrintJSON(root.Engine().BudgetAlert(budgets))
}
