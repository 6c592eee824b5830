// Package classify handles the note classifier commands
package classify

import (
	"errors"

	"github.com/daud-shahbaz/pywallet/cmd/root"
	"github.com/daud-shahbaz/pywallet/internal/ml"
	"github.com/daud-shahbaz/pywallet/internal/walleterror"

	"github.com/spf13/cobra"
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Train and use the note-based category classifier",
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the classifier on all expenses with notes",
	Run:   trainFunc,
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict a category for a note",
	Run:   predictFunc,
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Show the most common note keywords for a category",
	Run:   keywordsFunc,
}

var (
	note     string
	category string
)

func init() {
	predictCmd.Flags().StringVarP(&note, "note", "n", "", "Expense note to classify")
	_ = predictCmd.MarkFlagRequired("note")

	keywordsCmd.Flags().StringVarP(&category, "category", "c", "", "Category to inspect")
	_ = keywordsCmd.MarkFlagRequired("category")

	Cmd.AddCommand(trainCmd)
	Cmd.AddCommand(predictCmd)
	Cmd.AddCommand(keywordsCmd)
}

func trainFunc(cmd *cobra.Command, args []string) {
	count, err := ml.NewCategoryClassifier(root.Cfg, root.Store()).Train()
	if err != nil {
		root.Log.Errorf("Training failed: %v", err)
		return
	}
	root.Log.Infof("Classifier trained on %d entries", count)
}

func predictFunc(cmd *cobra.Command, args []string) {
	prediction, err := ml.NewCategoryClassifier(root.Cfg, root.Store()).Predict(note)
	if err != nil {
		var notTrained *walleterror.NotTrainedError
		if errors.As(err, &notTrained) {
			root.Log.Warnf("Model not trained yet, defaulting to %s", notTrained.DefaultCategory)
			return
		}
		root.Log.Errorf("Prediction failed: %v", err)
		return
	}
	root.PrintJSON(prediction)
}

func keywordsFunc(cmd *cobra.Command, args []string) {
	keywords := ml.NewCategoryClassifier(root.Cfg, root.Store()).CategoryKeywords(category)
	if len(keywords) == 0 {
		root.Log.Infof("No keywords found for %s", category)
		return
	}
	root.PrintJSON(keywords)
}
