package model

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// KNN votes among the K nearest training rows (Euclidean distance on
// standardized features). P(fraud) is the share of fraud neighbours.
type KNN struct {
	K int

	train  *mat.Dense
	y      []int
	nFeat  int
	scale  *standardizer
	fitted bool
}

func (m *KNN) Fit(X mat.Matrix, y []int) error {
	rows, cols, err := checkTraining(X, y)
	if err != nil {
		return err
	}
	if m.K <= 0 {
		m.K = 5
	}
	if m.K > rows {
		return fmt.Errorf("%w: k=%d exceeds %d training rows", ErrShape, m.K, rows)
	}
	m.scale = fitStandardizer(X)
	m.train = m.scale.transform(X)
	m.y = append([]int(nil), y...)
	m.nFeat = cols
	m.fitted = true
	return nil
}

func (m *KNN) proba(X mat.Matrix) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	rows, err := checkFeatures(X, m.nFeat)
	if err != nil {
		return nil, err
	}
	xs := m.scale.transform(X)
	nTrain, _ := m.train.Dims()
	dist := make([]float64, nTrain)
	idx := make([]int, nTrain)
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		q := xs.RawRowView(i)
		for j := 0; j < nTrain; j++ {
			dist[j] = floats.Distance(q, m.train.RawRowView(j), 2)
			idx[j] = j
		}
		sort.SliceStable(idx, func(a, b int) bool { return dist[idx[a]] < dist[idx[b]] })
		pos := 0
		for _, j := range idx[:m.K] {
			pos += m.y[j]
		}
		out[i] = float64(pos) / float64(m.K)
	}
	return out, nil
}

func (m *KNN) Predict(X mat.Matrix) ([]int, error) {
	p, err := m.proba(X)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(p))
	for i, v := range p {
		if v > 0.5 {
			out[i] = 1
		}
	}
	return out, nil
}

func (m *KNN) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	p, err := m.proba(X)
	if err != nil {
		return nil, err
	}
	return probaMatrix(p), nil
}
