package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// standardizer rescales columns to zero mean and unit variance using
// statistics from the training matrix.
type standardizer struct {
	mean []float64
	std  []float64
}

func fitStandardizer(X mat.Matrix) *standardizer {
	_, c := X.Dims()
	s := &standardizer{mean: make([]float64, c), std: make([]float64, c)}
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, X)
		m, sd := stat.MeanStdDev(col, nil)
		if sd == 0 || math.IsNaN(sd) {
			sd = 1
		}
		s.mean[j] = m
		s.std[j] = sd
	}
	return s
}

func (s *standardizer) transform(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return (v - s.mean[j]) / s.std[j]
	}, X)
	return out
}
