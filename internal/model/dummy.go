package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dummy strategies.
const (
	MostFrequent = "most_frequent"
	Constant     = "constant"
)

// Dummy ignores the features. With MostFrequent it predicts the majority
// training class and reports the class prior as probability; with Constant
// it always predicts the Constant label.
type Dummy struct {
	Strategy string
	Constant int

	prior  float64
	label  int
	nFeat  int
	fitted bool
}

func (d *Dummy) Fit(X mat.Matrix, y []int) error {
	_, cols, err := checkTraining(X, y)
	if err != nil {
		return err
	}
	switch d.Strategy {
	case "", MostFrequent:
		d.Strategy = MostFrequent
		pos := 0
		for _, v := range y {
			pos += v
		}
		d.prior = float64(pos) / float64(len(y))
		d.label = 0
		if 2*pos > len(y) {
			d.label = 1
		}
	case Constant:
		if d.Constant != 0 && d.Constant != 1 {
			return fmt.Errorf("constant label %d is not 0 or 1", d.Constant)
		}
		d.label = d.Constant
		d.prior = float64(d.Constant)
	default:
		return fmt.Errorf("unknown dummy strategy %q", d.Strategy)
	}
	d.nFeat = cols
	d.fitted = true
	return nil
}

func (d *Dummy) Predict(X mat.Matrix) ([]int, error) {
	if !d.fitted {
		return nil, ErrNotFitted
	}
	rows, err := checkFeatures(X, d.nFeat)
	if err != nil {
		return nil, err
	}
	out := make([]int, rows)
	for i := range out {
		out[i] = d.label
	}
	return out, nil
}

func (d *Dummy) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	if !d.fitted {
		return nil, ErrNotFitted
	}
	rows, err := checkFeatures(X, d.nFeat)
	if err != nil {
		return nil, err
	}
	p := make([]float64, rows)
	for i := range p {
		p[i] = d.prior
	}
	return probaMatrix(p), nil
}
