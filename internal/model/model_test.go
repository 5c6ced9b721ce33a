package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// separable puts fraud rows at large amounts and odd hours.
func separable() (*mat.Dense, []int) {
	data := []float64{
		12, 10,
		25, 11,
		18, 14,
		30, 15,
		22, 9,
		15, 13,
		900, 2,
		1200, 3,
		950, 1,
		1100, 4,
	}
	y := []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1}
	return mat.NewDense(10, 2, data), y
}

func TestNewAndNames(t *testing.T) {
	assert.Equal(t, []string{"dummy", "knn", "logistic"}, Names())
	m, err := New(" Logistic ", Params{Epochs: 10})
	require.NoError(t, err)
	lr, ok := m.(*LogisticRegression)
	require.True(t, ok)
	assert.Equal(t, 10, lr.Epochs)

	_, err = New("forest", Params{})
	assert.ErrorContains(t, err, "unknown model")
}

func TestDummyMostFrequent(t *testing.T) {
	X, y := separable()
	d := &Dummy{}
	require.NoError(t, d.Fit(X, y))
	pred, err := d.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, make([]int, 10), pred)

	proba, err := d.PredictProba(X)
	require.NoError(t, err)
	r, c := proba.Dims()
	assert.Equal(t, 10, r)
	assert.Equal(t, 2, c)
	assert.InDelta(t, 0.4, proba.At(3, 1), 1e-12)
	assert.InDelta(t, 0.6, proba.At(3, 0), 1e-12)
}

func TestDummyConstant(t *testing.T) {
	X, y := separable()
	d := &Dummy{Strategy: Constant, Constant: 1}
	require.NoError(t, d.Fit(X, y))
	pred, err := d.Predict(X)
	require.NoError(t, err)
	for _, v := range pred {
		assert.Equal(t, 1, v)
	}
	assert.Error(t, (&Dummy{Strategy: Constant, Constant: 3}).Fit(X, y))
	assert.Error(t, (&Dummy{Strategy: "uniform"}).Fit(X, y))
}

func TestLogisticRegressionSeparatesClasses(t *testing.T) {
	X, y := separable()
	m := &LogisticRegression{LearningRate: 0.5, Epochs: 300}
	require.NoError(t, m.Fit(X, y))
	pred, err := m.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, y, pred)

	proba, err := m.PredictProba(X)
	require.NoError(t, err)
	for i := range y {
		p := proba.At(i, 1)
		assert.InDelta(t, 1.0, proba.At(i, 0)+p, 1e-12)
		if y[i] == 1 {
			assert.Greater(t, p, 0.5)
		} else {
			assert.Less(t, p, 0.5)
		}
	}
	w, _ := m.Coefficients()
	assert.Len(t, w, 2)
	assert.Greater(t, w[0], 0.0, "amount should push towards fraud")
}

func TestKNN(t *testing.T) {
	X, y := separable()
	m := &KNN{K: 3}
	require.NoError(t, m.Fit(X, y))
	query := mat.NewDense(2, 2, []float64{1000, 2, 20, 12})
	pred, err := m.Predict(query)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, pred)
	proba, err := m.PredictProba(query)
	require.NoError(t, err)
	assert.Equal(t, 1.0, proba.At(0, 1))
	assert.Equal(t, 0.0, proba.At(1, 1))

	assert.True(t, errors.Is((&KNN{K: 50}).Fit(X, y), ErrShape))
}

func TestUnfittedAndShapeErrors(t *testing.T) {
	X, y := separable()
	for _, m := range []Classifier{&Dummy{}, &LogisticRegression{}, &KNN{}} {
		_, err := m.Predict(X)
		assert.True(t, errors.Is(err, ErrNotFitted), "%T", m)
		_, err = m.PredictProba(X)
		assert.True(t, errors.Is(err, ErrNotFitted), "%T", m)

		require.NoError(t, m.Fit(X, y))
		_, err = m.Predict(mat.NewDense(1, 3, nil))
		assert.True(t, errors.Is(err, ErrShape), "%T", m)
	}
	err := (&Dummy{}).Fit(X, y[:3])
	assert.True(t, errors.Is(err, ErrShape))
	assert.Error(t, (&Dummy{}).Fit(X, []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 2}))
}
