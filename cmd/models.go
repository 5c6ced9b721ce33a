package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/KaramelBytes/fraudeval/internal/model"
	"github.com/spf13/cobra"
)

var modelsJSON bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available classifiers and their configured hyperparameters",
	Example: `  fraudeval models
  fraudeval models --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := modelParams()
		type entry struct {
			Name   string            `json:"name"`
			Title  string            `json:"title"`
			Params map[string]string `json:"params,omitempty"`
		}
		var entries []entry
		for _, n := range model.Names() {
			entries = append(entries, entry{Name: n, Title: displayName(n), Params: paramStrings(n, params)})
		}
		if modelsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s: %s", e.Name, e.Title)
			if len(e.Params) > 0 {
				b, _ := json.Marshal(e.Params)
				fmt.Fprintf(cmd.OutOrStdout(), " %s", b)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().BoolVar(&modelsJSON, "json", false, "print as JSON")
}
