package experiment_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/fraudeval/internal/experiment"
	"github.com/KaramelBytes/fraudeval/internal/metrics"
	"github.com/KaramelBytes/fraudeval/internal/pipeline"
)

func result(name string, aucPR, roc float64) *pipeline.Result {
	rep, _ := metrics.ClassificationReport([]int{0, 0, 1, 1}, []int{0, 1, 1, 1})
	return &pipeline.Result{
		Name:      name,
		Report:    rep,
		Confusion: metrics.ConfusionMatrix{{1, 1}, {0, 2}},
		AUCPR:     aucPR,
		ROCAUC:    roc,
		PlotPath:  "plots/" + name + ".png",
	}
}

func TestSaveLoadAndLeaderboard(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "baseline")
	e := experiment.NewExperiment("baseline", "first pass", dir)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r1 := experiment.RunFromResult(result("Dummy", 0.25, 0.5), "dummy")
	r1.CreatedAt = base
	r2 := experiment.RunFromResult(result("Logistic", 0.91, 0.95), "logistic")
	r2.CreatedAt = base.Add(time.Minute)
	r3 := experiment.RunFromResult(result("KNN", 0.25, math.NaN()), "knn")
	r3.CreatedAt = base.Add(2 * time.Minute)

	id1 := e.AddRun(r1)
	id2 := e.AddRun(r2)
	id3 := e.AddRun(r3)
	if id1 == "" || id1 == id2 || id2 == id3 {
		t.Fatalf("run ids must be unique and non-empty: %q %q %q", id1, id2, id3)
	}
	if err := e.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !experiment.Exists(dir) {
		t.Fatalf("experiment.json not written")
	}

	back, err := experiment.LoadExperiment(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.RootDir() != dir || back.Description != "first pass" || len(back.Runs) != 3 {
		t.Fatalf("unexpected experiment after load: %+v", back)
	}
	board := back.Leaderboard()
	got := []string{board[0].Label(), board[1].Label(), board[2].Label()}
	want := []string{"Logistic", "Dummy", "KNN"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("leaderboard order = %v, want %v", got, want)
		}
	}
	if board[2].ROCAUC != nil || board[2].ROCAUCString() != "n/a" {
		t.Fatalf("undefined ROC AUC should round trip as absent")
	}
	if board[0].ROCAUCString() != "0.9500" {
		t.Fatalf("roc string = %q", board[0].ROCAUCString())
	}
	if board[0].Confusion != [2][2]int{{1, 1}, {0, 2}} {
		t.Fatalf("confusion lost: %v", board[0].Confusion)
	}

	names, err := experiment.List(root)
	if err != nil || len(names) != 1 || names[0] != "baseline" {
		t.Fatalf("list = %v, %v", names, err)
	}
}

func TestSummary(t *testing.T) {
	e := experiment.NewExperiment("cc", "", t.TempDir())
	if _, err := e.Summary(); err == nil {
		t.Fatalf("expected error for empty experiment")
	}
	e.AddRun(experiment.RunFromResult(result("Logistic", 0.8, 0.9), "logistic"))
	s, err := e.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{"[EXPERIMENT]", "[LEADERBOARD]", "| 1 | Logistic | logistic | 0.8000 | 0.9000 |", "[BEST RUN]", "TN=1 FP=1 FN=0 TP=2"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	if _, err := experiment.LoadExperiment(dir); err == nil || !strings.Contains(err.Error(), "experiment not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "experiment.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := experiment.LoadExperiment(dir); err == nil || !strings.Contains(err.Error(), "parse experiment") {
		t.Fatalf("expected parse error, got %v", err)
	}
	names, err := experiment.List(filepath.Join(dir, "missing"))
	if err != nil || len(names) != 0 {
		t.Fatalf("missing root should list nothing: %v %v", names, err)
	}
}
