package cmd

import (
	"fmt"
	"os"

	"github.com/KaramelBytes/fraudeval/internal/experiment"
	"github.com/spf13/cobra"
)

var (
	initDescription string
)

var initCmd = &cobra.Command{
	Use:   "init <experiment-name>",
	Short: "Initialize a new experiment for recording evaluation runs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		dir, err := resolveExperimentDirByName(name)
		if err != nil {
			return err
		}
		// Refuse to overwrite an existing experiment.
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			if experiment.Exists(dir) {
				return fmt.Errorf("experiment already exists at %s", dir)
			}
			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("inspect experiment directory: %w", err)
			}
			if len(entries) > 0 {
				return fmt.Errorf("directory %s already exists and is not empty; refusing to initialize experiment", dir)
			}
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("stat experiment directory: %w", err)
		}
		e := experiment.NewExperiment(name, initDescription, dir)
		if err := e.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Experiment initialized: %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initDescription, "desc", "d", "", "experiment description")
}
