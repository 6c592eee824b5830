// Package coach handles the coaching commands
package coach

import (
	"fmt"

	"github.com/daud-shahbaz/pywallet/cmd/root"
	coachpkg "github.com/daud-shahbaz/pywallet/internal/coach"

	"github.com/spf13/cobra"
)

// Cmd represents the coach command
var Cmd = &cobra.Command{
	Use:   "coach",
	Short: "Natural-language spending summaries and advice",
	Run:   summaryFunc,
}

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Personalized advice from budgets, trends and concentration",
	Run:   adviceFunc,
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Describe overall spending patterns",
	Run:   patternsFunc,
}

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "Suggest concrete next steps",
	Run:   actionsFunc,
}

func init() {
	Cmd.AddCommand(adviceCmd)
	Cmd.AddCommand(patternsCmd)
	Cmd.AddCommand(actionsCmd)
}

func summaryFunc(cmd *cobra.Command, args []string) {
	fmt.Println(coachpkg.NewCoach(root.Cfg, root.Store()).MonthlySummary())
}

func adviceFunc(cmd *cobra.Command, args []string) {
	for _, line := range coachpkg.NewCoach(root.Cfg, root.Store()).PersonalizedAdvice() {
		fmt.Println("- " + line)
	}
}

func patternsFunc(cmd *cobra.Command, args []string) {
	fmt.Println(coachpkg.NewCoach(root.Cfg, root.Store()).AnalyzePatterns())
}

func actionsFunc(cmd *cobra.Command, args []string) {
	for _, line := range coachpkg.NewCoach(root.Cfg, root.Store()).SuggestNextActions() {
		fmt.Println("- " + line)
	}
}
