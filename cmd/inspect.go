package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/fraudeval/internal/analysis"
	"github.com/KaramelBytes/fraudeval/internal/utils"
	"github.com/spf13/cobra"
)

var (
	insOutputPath string
	insLabel      string
	insSampleRows int
	insOutliers   bool
	insOutlierThr float64
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <csv>",
	Short: "Profile a dataset: schema, class balance and label correlations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt := analysis.DefaultOptions()
		opt.Label = firstNonEmpty(insLabel, settings().LabelColumn)
		if insSampleRows > 0 {
			opt.SampleRows = insSampleRows
		}
		if cmd.Flags().Changed("outliers") {
			opt.Outliers = insOutliers
		}
		if insOutlierThr > 0 {
			opt.OutlierThreshold = insOutlierThr
		}

		t, err := loadTable(cmd, path)
		if err != nil {
			return err
		}
		md := analysis.Profile(t, filepath.Base(path), opt).Markdown()

		if insOutputPath != "" {
			if err := utils.SafeWriteFile(insOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote profile to %s\n", insOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&insOutputPath, "output", "o", "", "write the profile to a file instead of stdout")
	inspectCmd.Flags().StringVar(&insLabel, "label", "", "label column (default from config)")
	inspectCmd.Flags().IntVar(&insSampleRows, "sample-rows", 5, "number of sample rows to include")
	inspectCmd.Flags().BoolVar(&insOutliers, "outliers", true, "compute robust outlier counts (MAD)")
	inspectCmd.Flags().Float64Var(&insOutlierThr, "outlier-threshold", 3.5, "robust |z| threshold for outliers (MAD-based)")
}
