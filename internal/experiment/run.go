package experiment

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/KaramelBytes/fraudeval/internal/metrics"
	"github.com/KaramelBytes/fraudeval/internal/pipeline"
)

// Run holds the scores of one evaluation.
type Run struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Model     string                `json:"model"`
	TrainPath string                `json:"train_path,omitempty"`
	TestPath  string                `json:"test_path,omitempty"`
	Confusion [2][2]int             `json:"confusion"`
	Classes   []metrics.ClassScores `json:"classes"`
	Accuracy  float64               `json:"accuracy"`
	AUCPR     float64               `json:"auc_pr"`
	// ROCAUC is absent when the test set held a single class.
	ROCAUC    *float64          `json:"roc_auc,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
	PlotPath  string            `json:"plot_path,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// RunFromResult captures an evaluation result. model is the registry name
// the classifier was built from.
func RunFromResult(res *pipeline.Result, model string) Run {
	r := Run{
		Name:      res.Name,
		Model:     model,
		Confusion: res.Confusion,
		AUCPR:     res.AUCPR,
		PlotPath:  res.PlotPath,
		CreatedAt: time.Now(),
	}
	if res.Report != nil {
		r.Classes = append([]metrics.ClassScores(nil), res.Report.Classes...)
		r.Accuracy = res.Report.Accuracy
	}
	if !math.IsNaN(res.ROCAUC) {
		v := res.ROCAUC
		r.ROCAUC = &v
	}
	return r
}

// Label is the display name of the run.
func (r *Run) Label() string {
	if strings.TrimSpace(r.Name) != "" {
		return r.Name
	}
	return r.Model
}

// FraudF1 returns the F1 score of the fraud class, 0 when unknown.
func (r *Run) FraudF1() float64 {
	if len(r.Classes) < 2 {
		return 0
	}
	return r.Classes[1].F1
}

// ROCAUCString formats the ROC AUC, "n/a" when undefined.
func (r *Run) ROCAUCString() string {
	if r.ROCAUC == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *r.ROCAUC)
}
