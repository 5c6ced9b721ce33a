package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/fraudeval/internal/experiment"
	"github.com/KaramelBytes/fraudeval/internal/model"
	"github.com/KaramelBytes/fraudeval/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	evTrain      string
	evTest       string
	evData       string
	evModel      string
	evName       string
	evLabel      string
	evDrop       []string
	evExperiment string
	evNoPlot     bool
	evShow       bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Train one model and print its classification report and AUC-PR",
	Example: `  fraudeval evaluate --train train.csv --test test.csv --model logistic
  fraudeval evaluate --data creditcard.csv --model knn -e baseline`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		label := firstNonEmpty(evLabel, c.LabelColumn)
		drop := evDrop
		if !cmd.Flags().Changed("drop") {
			drop = c.DropColumns
		}
		name := strings.ToLower(strings.TrimSpace(firstNonEmpty(evModel, c.DefaultModel)))
		params := modelParams()
		m, err := model.New(name, params)
		if err != nil {
			return err
		}
		tr, te, err := loadTrainTest(cmd, evTrain, evTest, evData, label, drop, c.TestSize, c.Seed)
		if err != nil {
			return err
		}

		display := firstNonEmpty(evName, displayName(name))
		ev := &pipeline.Evaluator{Out: cmd.OutOrStdout(), Logger: zap.L()}
		if !evNoPlot {
			ev.Plotter = renderer(evShow)
		}
		res, err := ev.Run(m, tr.X, tr.y, te.X, te.y, display)
		if err != nil {
			return err
		}
		if res.PlotPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Confusion matrix written to %s\n", res.PlotPath)
		}

		if evExperiment != "" {
			e, err := openExperiment(evExperiment, true)
			if err != nil {
				return err
			}
			run := experiment.RunFromResult(res, name)
			run.TrainPath, run.TestPath = firstNonEmpty(evTrain, evData), firstNonEmpty(evTest, evData)
			run.Params = paramStrings(name, params)
			id := e.AddRun(run)
			if err := e.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded run %s in experiment '%s'\n", id, e.Name)
		}
		return nil
	},
}

// displayName is the report title for a registered model name.
func displayName(name string) string {
	switch name {
	case "logistic":
		return "Logistic Regression"
	case "knn":
		return "K-Nearest Neighbors"
	case "dummy":
		return "Dummy Baseline"
	}
	return name
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evTrain, "train", "", "training CSV")
	evaluateCmd.Flags().StringVar(&evTest, "test", "", "test CSV")
	evaluateCmd.Flags().StringVar(&evData, "data", "", "single CSV to split into train/test (uses test_size and seed)")
	evaluateCmd.Flags().StringVarP(&evModel, "model", "m", "", "model name: "+strings.Join(model.Names(), ", ")+" (default from config)")
	evaluateCmd.Flags().StringVar(&evName, "name", "", "display name used in the report and plot title")
	evaluateCmd.Flags().StringVar(&evLabel, "label", "", "label column (default from config)")
	evaluateCmd.Flags().StringSliceVar(&evDrop, "drop", nil, "feature columns to ignore (comma-separated)")
	evaluateCmd.Flags().StringVarP(&evExperiment, "experiment", "e", "", "record the run in this experiment")
	evaluateCmd.Flags().BoolVar(&evNoPlot, "no-plot", false, "skip the confusion-matrix heatmap")
	evaluateCmd.Flags().BoolVar(&evShow, "show", false, "open the heatmap in the system viewer")
}
