// Package model provides binary fraud classifiers behind a common interface.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Classifier is the capability set the evaluation pipeline needs.
type Classifier interface {
	// Fit trains on X (rows are samples) and labels y in {0,1}.
	Fit(X mat.Matrix, y []int) error
	// Predict returns a 0/1 label per row of X.
	Predict(X mat.Matrix) ([]int, error)
	// PredictProba returns an n x 2 matrix; column 1 is P(fraud).
	PredictProba(X mat.Matrix) (*mat.Dense, error)
}

var (
	ErrNotFitted = errors.New("model is not fitted")
	ErrShape     = errors.New("shape mismatch")
)

// Params carries hyperparameters for New. Zero values select defaults.
type Params struct {
	LearningRate float64
	Epochs       int
	L2           float64
	Threshold    float64
	K            int
	Strategy     string
	Constant     int
}

var builders = map[string]func(Params) Classifier{
	"dummy": func(p Params) Classifier {
		return &Dummy{Strategy: p.Strategy, Constant: p.Constant}
	},
	"logistic": func(p Params) Classifier {
		return &LogisticRegression{LearningRate: p.LearningRate, Epochs: p.Epochs, L2: p.L2, Threshold: p.Threshold}
	},
	"knn": func(p Params) Classifier {
		return &KNN{K: p.K}
	},
}

// New builds a classifier by name.
func New(name string, p Params) (Classifier, error) {
	b, ok := builders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown model %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return b(p), nil
}

// Names lists the registered model names in sorted order.
func Names() []string {
	out := make([]string, 0, len(builders))
	for k := range builders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func checkTraining(X mat.Matrix, y []int) (rows, cols int, err error) {
	rows, cols = X.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, fmt.Errorf("%w: empty training matrix", ErrShape)
	}
	if len(y) != rows {
		return 0, 0, fmt.Errorf("%w: %d rows vs %d labels", ErrShape, rows, len(y))
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return 0, 0, fmt.Errorf("label %d at row %d is not 0 or 1", v, i)
		}
	}
	return rows, cols, nil
}

func checkFeatures(X mat.Matrix, want int) (int, error) {
	rows, cols := X.Dims()
	if rows == 0 {
		return 0, fmt.Errorf("%w: no rows to predict", ErrShape)
	}
	if cols != want {
		return 0, fmt.Errorf("%w: model fitted on %d features, got %d", ErrShape, want, cols)
	}
	return rows, nil
}

// probaMatrix packs P(fraud) into the two-column layout.
func probaMatrix(p1 []float64) *mat.Dense {
	out := mat.NewDense(len(p1), 2, nil)
	for i, p := range p1 {
		out.Set(i, 0, 1-p)
		out.Set(i, 1, p)
	}
	return out
}
