// Package pipeline trains a classifier and reports how well it separates
// fraud from legitimate transactions.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/KaramelBytes/fraudeval/internal/metrics"
	"github.com/KaramelBytes/fraudeval/internal/model"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Plotter draws a confusion matrix and returns where it was written.
type Plotter interface {
	PlotConfusionMatrix(yTrue, yPred []int, title string) (string, error)
}

// Result is everything one evaluation produced. Model is the instance passed
// to Run, now fitted.
type Result struct {
	Name          string
	Model         model.Classifier
	Predictions   []int
	Probabilities []float64
	Report        *metrics.Report
	Confusion     metrics.ConfusionMatrix
	AUCPR         float64
	// ROCAUC is NaN when the test labels hold a single class.
	ROCAUC   float64
	PlotPath string
}

// Evaluator runs the train/predict/report sequence. Report text goes to Out;
// a nil Plotter skips the heatmap.
type Evaluator struct {
	Out     io.Writer
	Plotter Plotter
	Logger  *zap.Logger
}

// Run fits m on the training data, scores it on the test data and prints a
// classification report with AUC-PR. Errors from m are returned unmodified.
func (e *Evaluator) Run(m model.Classifier, XTrain mat.Matrix, yTrain []int, XTest mat.Matrix, yTest []int, name string) (*Result, error) {
	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	log := e.Logger
	if log == nil {
		log = zap.L()
	}
	log = log.With(zap.String("model", name))

	fmt.Fprintf(out, "--- Training and Evaluating: %s ---\n", name)

	log.Debug("fitting", zap.Int("train_rows", len(yTrain)))
	if err := m.Fit(XTrain, yTrain); err != nil {
		return nil, err
	}
	pred, err := m.Predict(XTest)
	if err != nil {
		return nil, err
	}
	proba, err := m.PredictProba(XTest)
	if err != nil {
		return nil, err
	}
	scores, err := positiveColumn(proba, len(yTest))
	if err != nil {
		return nil, err
	}

	rep, err := metrics.ClassificationReport(yTest, pred)
	if err != nil {
		return nil, fmt.Errorf("classification report: %w", err)
	}
	cm, err := metrics.NewConfusionMatrix(yTest, pred)
	if err != nil {
		return nil, fmt.Errorf("confusion matrix: %w", err)
	}
	fmt.Fprintln(out, "\nClassification Report:")
	fmt.Fprint(out, rep.String())

	aucPR, err := metrics.PRAUC(yTest, scores)
	if err != nil {
		return nil, fmt.Errorf("precision-recall curve: %w", err)
	}
	fmt.Fprintf(out, "Area Under the Precision-Recall Curve (AUC-PR): %.4f\n", aucPR)

	rocAUC, err := metrics.ROCAUC(yTest, scores)
	switch {
	case err == nil:
		fmt.Fprintf(out, "Area Under the ROC Curve (ROC AUC): %.4f\n", rocAUC)
	case errors.Is(err, metrics.ErrSingleClass):
		rocAUC = math.NaN()
		log.Debug("roc auc undefined", zap.Error(err))
	default:
		return nil, fmt.Errorf("roc curve: %w", err)
	}

	res := &Result{
		Name:          name,
		Model:         m,
		Predictions:   pred,
		Probabilities: scores,
		Report:        rep,
		Confusion:     cm,
		AUCPR:         aucPR,
		ROCAUC:        rocAUC,
	}
	if e.Plotter != nil {
		path, err := e.Plotter.PlotConfusionMatrix(yTest, pred, "Confusion Matrix for "+name)
		if err != nil {
			log.Warn("confusion matrix plot failed", zap.Error(err))
		}
		res.PlotPath = path
	}
	log.Info("evaluated",
		zap.Float64("auc_pr", aucPR),
		zap.Float64("f1", rep.Positive().F1),
		zap.Int("tp", cm.TP()), zap.Int("fp", cm.FP()),
		zap.Int("fn", cm.FN()), zap.Int("tn", cm.TN()),
	)
	return res, nil
}

// TrainAndEvaluate runs the evaluation with report text on stdout and no
// heatmap, returning the same model instance it was given.
func TrainAndEvaluate(m model.Classifier, XTrain mat.Matrix, yTrain []int, XTest mat.Matrix, yTest []int, name string) (model.Classifier, error) {
	e := &Evaluator{Out: os.Stdout}
	if _, err := e.Run(m, XTrain, yTrain, XTest, yTest, name); err != nil {
		return nil, err
	}
	return m, nil
}

func positiveColumn(proba *mat.Dense, n int) ([]float64, error) {
	if proba == nil {
		return nil, fmt.Errorf("%w: no probabilities returned", model.ErrShape)
	}
	rows, cols := proba.Dims()
	if cols < 2 {
		return nil, fmt.Errorf("%w: probability matrix has %d columns, need 2", model.ErrShape, cols)
	}
	if rows != n {
		return nil, fmt.Errorf("%w: %d probability rows for %d test labels", model.ErrShape, rows, n)
	}
	return mat.Col(nil, 1, proba), nil
}
