package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is a binary logistic model trained with full-batch
// gradient descent on binary cross-entropy. Features are standardized with
// training statistics before fitting and prediction.
type LogisticRegression struct {
	LearningRate float64
	Epochs       int
	L2           float64
	// Threshold on P(fraud) used by Predict; 0 means 0.5.
	Threshold float64

	w     *mat.VecDense
	b     float64
	scale *standardizer
}

func (m *LogisticRegression) defaults() {
	if m.LearningRate <= 0 {
		m.LearningRate = 0.1
	}
	if m.Epochs <= 0 {
		m.Epochs = 500
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		m.Threshold = 0.5
	}
}

func (m *LogisticRegression) Fit(X mat.Matrix, y []int) error {
	rows, cols, err := checkTraining(X, y)
	if err != nil {
		return err
	}
	m.defaults()
	m.scale = fitStandardizer(X)
	xs := m.scale.transform(X)

	w := mat.NewVecDense(cols, nil)
	b := 0.0
	n := float64(rows)
	var z, grad mat.VecDense
	resid := mat.NewVecDense(rows, nil)
	for ep := 0; ep < m.Epochs; ep++ {
		z.MulVec(xs, w)
		for i := 0; i < rows; i++ {
			resid.SetVec(i, sigmoid(z.AtVec(i)+b)-float64(y[i]))
		}
		grad.MulVec(xs.T(), resid)
		grad.ScaleVec(1/n, &grad)
		if m.L2 > 0 {
			grad.AddScaledVec(&grad, m.L2, w)
		}
		w.AddScaledVec(w, -m.LearningRate, &grad)
		b -= m.LearningRate * mat.Sum(resid) / n
	}
	m.w = w
	m.b = b
	return nil
}

// Coefficients returns the learned weights in standardized feature space.
func (m *LogisticRegression) Coefficients() ([]float64, float64) {
	if m.w == nil {
		return nil, 0
	}
	return mat.Col(nil, 0, m.w), m.b
}

func (m *LogisticRegression) scores(X mat.Matrix) ([]float64, error) {
	if m.w == nil {
		return nil, ErrNotFitted
	}
	rows, err := checkFeatures(X, m.w.Len())
	if err != nil {
		return nil, err
	}
	var z mat.VecDense
	z.MulVec(m.scale.transform(X), m.w)
	out := make([]float64, rows)
	for i := range out {
		out[i] = sigmoid(z.AtVec(i) + m.b)
	}
	return out, nil
}

func (m *LogisticRegression) Predict(X mat.Matrix) ([]int, error) {
	p, err := m.scores(X)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(p))
	for i, v := range p {
		if v >= m.Threshold {
			out[i] = 1
		}
	}
	return out, nil
}

func (m *LogisticRegression) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	p, err := m.scores(X)
	if err != nil {
		return nil, err
	}
	return probaMatrix(p), nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
