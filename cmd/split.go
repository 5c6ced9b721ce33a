package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/fraudeval/internal/dataio"
	"github.com/spf13/cobra"
)

var (
	spTrainOut string
	spTestOut  string
	spLabel    string
	spTestSize float64
	spSeed     int64
)

var splitCmd = &cobra.Command{
	Use:   "split <csv>",
	Short: "Write a stratified train/test split of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		path := args[0]
		label := firstNonEmpty(spLabel, c.LabelColumn)
		testSize := c.TestSize
		if cmd.Flags().Changed("test-size") {
			testSize = spTestSize
		}
		seed := c.Seed
		if cmd.Flags().Changed("seed") {
			seed = spSeed
		}

		t, err := loadTable(cmd, path)
		if err != nil {
			return err
		}
		train, test, err := dataio.TrainTestSplit(t, label, testSize, seed)
		if err != nil {
			return err
		}
		ext := filepath.Ext(path)
		base := strings.TrimSuffix(path, ext)
		trainOut := firstNonEmpty(spTrainOut, base+"_train"+ext)
		testOut := firstNonEmpty(spTestOut, base+"_test"+ext)

		// outputs keep the input's delimiter whatever their extension
		delim := dataio.WithOutputDelimiter(dataio.DelimiterFor(path))
		for _, part := range []struct {
			t    *dataio.Table
			path string
		}{{train, trainOut}, {test, testOut}} {
			if err := dataio.WriteCSV(part.t, part.path, delim); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data saved to %s\n", part.path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Split %d rows into %d train / %d test (test_size=%.2f, seed=%d)\n",
			t.NumRows(), train.NumRows(), test.NumRows(), testSize, seed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringVar(&spTrainOut, "train", "", "output path for the training rows (default <name>_train.<ext>)")
	splitCmd.Flags().StringVar(&spTestOut, "test", "", "output path for the test rows (default <name>_test.<ext>)")
	splitCmd.Flags().StringVar(&spLabel, "label", "", "label column to stratify on (default from config)")
	splitCmd.Flags().Float64Var(&spTestSize, "test-size", 0.2, "fraction of rows held out for testing")
	splitCmd.Flags().Int64Var(&spSeed, "seed", 42, "random seed")
}
