// Package metrics computes binary classification scores for fraud labels
// (0 = not fraud, 1 = fraud).
package metrics

import (
	"errors"
	"fmt"
)

// ClassNames holds display names indexed by label.
var ClassNames = [2]string{"Not Fraud", "Fraud"}

var (
	// ErrLength reports vectors of different lengths.
	ErrLength = errors.New("label vectors differ in length")
	// ErrLabel reports a label outside {0,1}.
	ErrLabel = errors.New("label outside {0,1}")
	// ErrEmpty reports an empty input.
	ErrEmpty = errors.New("no samples")
)

// ConfusionMatrix counts (actual, predicted) pairs. Row is the actual label,
// column the predicted label.
type ConfusionMatrix [2][2]int

// NewConfusionMatrix builds the 2x2 matrix over the fixed classes {0,1}.
func NewConfusionMatrix(yTrue, yPred []int) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	if err := checkPair(yTrue, yPred); err != nil {
		return cm, err
	}
	for i := range yTrue {
		cm[yTrue[i]][yPred[i]]++
	}
	return cm, nil
}

func (cm ConfusionMatrix) TN() int { return cm[0][0] }
func (cm ConfusionMatrix) FP() int { return cm[0][1] }
func (cm ConfusionMatrix) FN() int { return cm[1][0] }
func (cm ConfusionMatrix) TP() int { return cm[1][1] }

// Total returns the number of compared labels.
func (cm ConfusionMatrix) Total() int {
	return cm[0][0] + cm[0][1] + cm[1][0] + cm[1][1]
}

func (cm ConfusionMatrix) String() string {
	return fmt.Sprintf("[[%d %d]\n [%d %d]]", cm[0][0], cm[0][1], cm[1][0], cm[1][1])
}

func checkPair(yTrue, yPred []int) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("%w: %d true vs %d predicted", ErrLength, len(yTrue), len(yPred))
	}
	if err := checkLabels(yTrue); err != nil {
		return err
	}
	return checkLabels(yPred)
}

func checkLabels(y []int) error {
	for i, v := range y {
		if v != 0 && v != 1 {
			return fmt.Errorf("%w: %d at position %d", ErrLabel, v, i)
		}
	}
	return nil
}
