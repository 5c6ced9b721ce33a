package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so state does not leak
// between invocations of the shared root command.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out)
	}
	return out
}

// isolate points HOME and the plot directory at temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FRAUDEVAL_PLOT_DIR", filepath.Join(home, "plots"))
	return home
}

// writeTransactions writes a separable dataset: every fifth row is fraud with
// a large amount and negative V1.
func writeTransactions(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Time,V1,Amount,Class\n")
	for i := 0; i < 50; i++ {
		if i%5 == 0 {
			fmt.Fprintf(&b, "%d,%.2f,%d,1\n", i*10, -3.0-float64(i%3)/10, 500+i)
		} else {
			fmt.Fprintf(&b, "%d,%.2f,%d,0\n", i*10, 1.0+float64(i%4)/10, 10+i%7)
		}
	}
	path := filepath.Join(dir, "transactions.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestCLI_Split_Evaluate_RecordAndList(t *testing.T) {
	home := isolate(t)
	data := writeTransactions(t, home)

	out := mustRun(t, "split", data)
	trainPath := filepath.Join(home, "transactions_train.csv")
	testPath := filepath.Join(home, "transactions_test.csv")
	if !strings.Contains(out, "Data saved to "+trainPath) || !strings.Contains(out, "Data saved to "+testPath) {
		t.Fatalf("expected save diagnostics, got:\n%s", out)
	}
	if !strings.Contains(out, "into 40 train / 10 test") {
		t.Fatalf("unexpected split summary:\n%s", out)
	}

	mustRun(t, "init", "baseline", "-d", "first pass")
	if _, err := runCmd(t, "init", "baseline"); err == nil {
		t.Fatalf("expected error re-initializing an experiment")
	}

	out = mustRun(t, "evaluate", "--train", trainPath, "--test", testPath, "--model", "logistic", "-e", "baseline")
	for _, want := range []string{
		"--- Training and Evaluating: Logistic Regression ---",
		"Classification Report:",
		"Area Under the Precision-Recall Curve (AUC-PR): 1.0000",
		"✓ Confusion matrix written to " + filepath.Join(home, "plots", "confusion-matrix-for-logistic-regression.png"),
		"✓ Recorded run",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("evaluate output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(home, "plots", "confusion-matrix-for-logistic-regression.png")); err != nil {
		t.Fatalf("heatmap not written: %v", err)
	}

	out = mustRun(t, "list", "--experiments")
	if !strings.Contains(out, "- baseline") {
		t.Fatalf("experiment not listed:\n%s", out)
	}
	out = mustRun(t, "list", "--runs", "-e", "baseline")
	if !strings.Contains(out, "Logistic Regression") || !strings.Contains(out, "1.0000") {
		t.Fatalf("run not listed:\n%s", out)
	}
	out = mustRun(t, "list", "--runs", "-e", "baseline", "--summary")
	if !strings.Contains(out, "[LEADERBOARD]") || !strings.Contains(out, "trained on "+trainPath) {
		t.Fatalf("summary missing sections:\n%s", out)
	}
}

func TestCLI_EvaluateMissingFile(t *testing.T) {
	home := isolate(t)
	data := writeTransactions(t, home)
	out, err := runCmd(t, "evaluate", "--train", filepath.Join(home, "nope.csv"), "--test", data, "--no-plot")
	if err == nil {
		t.Fatalf("expected error for missing training file")
	}
	if !strings.Contains(out, "Error loading data:") {
		t.Fatalf("expected fail-soft diagnostic, got:\n%s", out)
	}
	if strings.Contains(out, "Training and Evaluating") {
		t.Fatalf("pipeline should not start without data:\n%s", out)
	}

	if _, err := runCmd(t, "evaluate", "--data", data, "--model", "forest"); err == nil || !strings.Contains(err.Error(), "unknown model") {
		t.Fatalf("expected unknown model error, got %v", err)
	}
}

func TestCLI_CompareRanksModels(t *testing.T) {
	home := isolate(t)
	data := writeTransactions(t, home)
	out := mustRun(t, "compare", "--data", data, "--quiet", "-e", "cmp")
	for _, want := range []string{"AUC-PR", "Logistic Regression", "K-Nearest Neighbors", "Dummy Baseline", "✓ Recorded 3 runs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("compare output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Dummy Baseline") < strings.Index(out, "Logistic Regression") {
		t.Fatalf("baseline should rank below logistic regression:\n%s", out)
	}
	if strings.Contains(out, "Classification Report:") {
		t.Fatalf("per-model reports should be hidden without --verbose")
	}
}

func TestCLI_InspectWritesProfile(t *testing.T) {
	home := isolate(t)
	data := writeTransactions(t, home)
	outPath := filepath.Join(home, "profile.md")
	mustRun(t, "inspect", data, "-o", outPath)
	body, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read profile: %v", err)
	}
	for _, want := range []string{"[DATASET SUMMARY]", "Rows: 50", "[CLASS BALANCE]", "- 1: 10 (20.00%)", "[LABEL CORRELATIONS]"} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("profile missing %q:\n%s", want, body)
		}
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	isolate(t)
	mustRun(t, "config", "set", "knn_k", "7")
	out := mustRun(t, "config", "show")
	if !strings.Contains(out, "knn_k: 7") || !strings.Contains(out, "label_column: Class") {
		t.Fatalf("unexpected config:\n%s", out)
	}
	if _, err := runCmd(t, "config", "set", "test_size", "2"); err == nil {
		t.Fatalf("expected validation error")
	}
	out = mustRun(t, "models")
	if !strings.Contains(out, `- knn: K-Nearest Neighbors {"k":"7"}`) {
		t.Fatalf("models should reflect config:\n%s", out)
	}
}

func TestCLI_SplitFailsWhenOutputUnwritable(t *testing.T) {
	home := isolate(t)
	data := writeTransactions(t, home)
	out, err := runCmd(t, "split", data, "--train", filepath.Join(home, "missing", "train.csv"))
	if err == nil {
		t.Fatalf("expected error writing into a missing directory")
	}
	if strings.Contains(out, "Split ") {
		t.Fatalf("summary printed after a failed save:\n%s", out)
	}
}

func TestCLI_SplitKeepsInputDelimiter(t *testing.T) {
	home := isolate(t)
	csvPath := writeTransactions(t, home)
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	tsvPath := filepath.Join(home, "transactions.tsv")
	if err := os.WriteFile(tsvPath, []byte(strings.ReplaceAll(string(raw), ",", "\t")), 0o644); err != nil {
		t.Fatalf("write tsv: %v", err)
	}

	mustRun(t, "split", tsvPath, "--test", filepath.Join(home, "holdout.csv"))
	train, err := os.ReadFile(filepath.Join(home, "transactions_train.tsv"))
	if err != nil {
		t.Fatalf("default train output: %v", err)
	}
	if !strings.HasPrefix(string(train), "Time\tV1\tAmount\tClass\n") {
		t.Fatalf("train output lost the tab delimiter:\n%s", train)
	}
	test, err := os.ReadFile(filepath.Join(home, "holdout.csv"))
	if err != nil {
		t.Fatalf("test output: %v", err)
	}
	if !strings.HasPrefix(string(test), "Time\tV1\tAmount\tClass\n") {
		t.Fatalf("explicit .csv output should keep the input delimiter:\n%s", test)
	}
}
