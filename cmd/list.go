package cmd

import (
	"fmt"

	"github.com/KaramelBytes/fraudeval/internal/experiment"
	"github.com/spf13/cobra"
)

var (
	listExperiments bool
	listRuns        bool
	listExpName     string
	listSummary     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List experiments or the runs recorded in one",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if listExperiments == listRuns { // either both true or both false
			return fmt.Errorf("specify exactly one of --experiments or --runs")
		}
		if listExperiments {
			root, err := experimentsRoot()
			if err != nil {
				return err
			}
			names, err := experiment.List(root)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(out, "(no experiments)")
				return nil
			}
			for _, n := range names {
				fmt.Fprintf(out, "- %s\n", n)
			}
			return nil
		}
		if listExpName == "" {
			return fmt.Errorf("--experiment is required when using --runs")
		}
		e, err := openExperiment(listExpName, false)
		if err != nil {
			return err
		}
		if len(e.Runs) == 0 {
			fmt.Fprintln(out, "(no runs)")
			return nil
		}
		if listSummary {
			s, err := e.Summary()
			if err != nil {
				return err
			}
			fmt.Fprint(out, s)
			return nil
		}
		printLeaderboard(out, e.Leaderboard())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listExperiments, "experiments", false, "list experiments")
	listCmd.Flags().BoolVar(&listRuns, "runs", false, "list runs in an experiment, best AUC-PR first")
	listCmd.Flags().StringVarP(&listExpName, "experiment", "e", "", "experiment name for --runs")
	listCmd.Flags().BoolVar(&listSummary, "summary", false, "with --runs, print a Markdown summary instead of the table")
}
