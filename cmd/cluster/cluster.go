// Package cluster handles the spending pattern clustering commands
package cluster

import (
	"github.com/daud-shahbaz/pywallet/cmd/root"
	"github.com/daud-shahbaz/pywallet/internal/ml"

	"github.com/spf13/cobra"
)

// Cmd represents the cluster command
var Cmd = &cobra.Command{
	Use:   "cluster",
	Short: "Group spending behavior into k-means clusters",
	Run:   clusterFunc,
}

// CompareCmd represents the compare command
var CompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Profile the spending distribution across categories",
	Run:   compareFunc,
}

func clusterFunc(cmd *cobra.Command, args []string) {
	report, err := ml.NewSpendingClusterer(root.Cfg, root.Store()).Cluster()
	if err != nil {
		root.Log.Errorf("Clustering failed: %v", err)
		return
	}
	root.PrintJSON(report)
}

func compareFunc(cmd *cobra.Command, args []string) {
	report, err := ml.NewSpendingClusterer(root.Cfg, root.Store()).Compare()
	if err != nil {
		root.Log.Errorf("Comparison failed: %v", err)
		return
	}
	root.PrintJSON(report)
}
