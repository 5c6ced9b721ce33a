package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/fraudeval/internal/experiment"
	"github.com/KaramelBytes/fraudeval/internal/model"
	"github.com/KaramelBytes/fraudeval/internal/pipeline"
	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cmpTrain      string
	cmpTest       string
	cmpData       string
	cmpModels     []string
	cmpLabel      string
	cmpDrop       []string
	cmpExperiment string
	cmpPlots      bool
	cmpVerbose    bool
	cmpQuiet      bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Evaluate several models on the same split and rank them by AUC-PR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		label := firstNonEmpty(cmpLabel, c.LabelColumn)
		drop := cmpDrop
		if !cmd.Flags().Changed("drop") {
			drop = c.DropColumns
		}
		names := append([]string(nil), cmpModels...)
		if len(names) == 0 {
			names = model.Names()
		}
		params := modelParams()
		// validate every name before any training
		for i, n := range names {
			names[i] = strings.ToLower(strings.TrimSpace(n))
			if _, err := model.New(names[i], params); err != nil {
				return err
			}
		}
		tr, te, err := loadTrainTest(cmd, cmpTrain, cmpTest, cmpData, label, drop, c.TestSize, c.Seed)
		if err != nil {
			return err
		}

		var report io.Writer = io.Discard
		if cmpVerbose {
			report = cmd.OutOrStdout()
		}
		ev := &pipeline.Evaluator{Out: report, Logger: zap.L()}
		if cmpPlots {
			ev.Plotter = renderer(false)
		}

		var bar *progressbar.ProgressBar
		if !cmpQuiet {
			bar = progressbar.NewOptions(len(names),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionSetDescription("[cyan][bold]Evaluating models...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() { fmt.Fprintln(cmd.ErrOrStderr()) }),
			)
		}

		board := experiment.NewExperiment("compare", "", "")
		var record *experiment.Experiment
		if cmpExperiment != "" {
			if record, err = openExperiment(cmpExperiment, true); err != nil {
				return err
			}
		}
		for _, n := range names {
			m, _ := model.New(n, params)
			res, err := ev.Run(m, tr.X, tr.y, te.X, te.y, displayName(n))
			if err != nil {
				return fmt.Errorf("%s: %w", n, err)
			}
			run := experiment.RunFromResult(res, n)
			run.TrainPath, run.TestPath = firstNonEmpty(cmpTrain, cmpData), firstNonEmpty(cmpTest, cmpData)
			run.Params = paramStrings(n, params)
			board.AddRun(run)
			if record != nil {
				record.AddRun(run)
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}

		printLeaderboard(cmd.OutOrStdout(), board.Leaderboard())
		if record != nil {
			if err := record.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %d runs in experiment '%s'\n", len(names), record.Name)
		}
		return nil
	},
}

// printLeaderboard writes runs as an aligned table with a styled header.
func printLeaderboard(out io.Writer, runs []*experiment.Run) {
	fmt.Fprint(out, renderLeaderboard(lipgloss.NewRenderer(out), runs))
}

// renderLeaderboard pads every cell to its column width before styling so
// escape sequences never count toward alignment.
func renderLeaderboard(re *lipgloss.Renderer, runs []*experiment.Run) string {
	headerStyle := re.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	bestStyle := re.NewStyle().Foreground(lipgloss.Color("42"))

	rows := [][]string{{"#", "Model", "AUC-PR", "ROC AUC", "Fraud P", "Fraud R", "Fraud F1", "Accuracy"}}
	for i, r := range runs {
		var p, rec float64
		if len(r.Classes) > 1 {
			p, rec = r.Classes[1].Precision, r.Classes[1].Recall
		}
		rows = append(rows, []string{
			fmt.Sprint(i + 1), r.Label(),
			fmt.Sprintf("%.4f", r.AUCPR), r.ROCAUCString(),
			fmt.Sprintf("%.2f", p), fmt.Sprintf("%.2f", rec),
			fmt.Sprintf("%.2f", r.FraudF1()), fmt.Sprintf("%.4f", r.Accuracy),
		})
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for j, cell := range row {
			widths[j] = max(widths[j], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			padded := cell
			if j < len(row)-1 {
				padded += strings.Repeat(" ", widths[j]-lipgloss.Width(cell))
			}
			switch {
			case i == 0:
				padded = headerStyle.Render(padded)
			case i == 1 && j == 1 && len(runs) > 1:
				padded = bestStyle.Render(padded)
			}
			cells[j] = padded
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteByte('\n')
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&cmpTrain, "train", "", "training CSV")
	compareCmd.Flags().StringVar(&cmpTest, "test", "", "test CSV")
	compareCmd.Flags().StringVar(&cmpData, "data", "", "single CSV to split into train/test (uses test_size and seed)")
	compareCmd.Flags().StringSliceVar(&cmpModels, "models", nil, "models to compare (default: all)")
	compareCmd.Flags().StringVar(&cmpLabel, "label", "", "label column (default from config)")
	compareCmd.Flags().StringSliceVar(&cmpDrop, "drop", nil, "feature columns to ignore (comma-separated)")
	compareCmd.Flags().StringVarP(&cmpExperiment, "experiment", "e", "", "record every run in this experiment")
	compareCmd.Flags().BoolVar(&cmpPlots, "plots", false, "write a confusion-matrix heatmap per model")
	compareCmd.Flags().BoolVarP(&cmpVerbose, "verbose", "v", false, "print each model's full report")
	compareCmd.Flags().BoolVar(&cmpQuiet, "quiet", false, "suppress the progress bar")
}
