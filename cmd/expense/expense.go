// Package expense handles expense record management commands
package expense

import (
	"time"

	"github.com/daud-shahbaz/pywallet/cmd/root"
	"github.com/daud-shahbaz/pywallet/internal/dateutils"
	"github.com/daud-shahbaz/pywallet/internal/models"
	"github.com/daud-shahbaz/pywallet/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the expense command
var Cmd = &cobra.Command{
	Use:   "expense",
	Short: "Add, list and delete expense records",
	Long:  `Manage the expense store: add new records, list with filters, and delete by id.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new expense record",
	Run:   addFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List expense records with optional filters",
	Run:   listFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an expense record by id",
	Run:   deleteFunc,
}

var (
	amount    int64
	category  string
	date      string
	note      string
	expenseID int

	filterCategory string
	filterStart    string
	filterEnd      string
	filterMin      int64
	filterMax      int64
)

func init() {
	addCmd.Flags().Int64VarP(&amount, "amount", "a", 0, "Expense amount")
	addCmd.Flags().StringVarP(&category, "category", "c", "", "Expense category")
	addCmd.Flags().StringVarP(&date, "date", "d", "", "Expense date (YYYY-MM-DD, default: today)")
	addCmd.Flags().StringVarP(&note, "note", "n", "", "Optional note")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("category")

	listCmd.Flags().StringVarP(&filterCategory, "category", "c", "", "Only this category")
	listCmd.Flags().StringVar(&filterStart, "start", "", "Earliest date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&filterEnd, "end", "", "Latest date (YYYY-MM-DD)")
	listCmd.Flags().Int64Var(&filterMin, "min", -1, "Minimum amount")
	listCmd.Flags().Int64Var(&filterMax, "max", -1, "Maximum amount")

	deleteCmd.Flags().IntVarP(&expenseID, "id", "i", 0, "Expense id to delete")
	_ = deleteCmd.MarkFlagRequired("id")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deleteCmd)
}

func addFunc(cmd *cobra.Command, args []string) {
	if date == "" {
		date = dateutils.ToISODate(time.Now())
	}

	id, err := root.Store().Add(amount, category, date, note, root.Owner)
	if err != nil {
		root.Log.Errorf("Failed to add expense: %v", err)
		return
	}
	root.Log.Infof("Expense added with id %d (%s)",
		id, models.FormatCurrency(amount, root.Cfg.Currency))
}

func listFunc(cmd *cobra.Command, args []string) {
	filter := store.Filter{
		Category:  filterCategory,
		StartDate: filterStart,
		EndDate:   filterEnd,
	}
	if filterMin >= 0 {
		filter.MinAmount = &filterMin
	}
	if filterMax >= 0 {
		filter.MaxAmount = &filterMax
	}

	table := root.Store().FilterTable(filter)
	if table.Empty() {
		root.Log.Info("No expenses match the given filters")
		return
	}
	root.PrintJSON(table.Rows)
	root.Log.Infof("%d records, total %s",
		table.Len(), models.FormatCurrency(table.Total(), root.Cfg.Currency))
}

func deleteFunc(cmd *cobra.Command, args []string) {
	if err := root.Store().Delete(expenseID); err != nil {
		root.Log.Errorf("Failed to delete expense: %v", err)
		return
	}
	root.Log.Infof("Expense %d deleted", expenseID)
}
