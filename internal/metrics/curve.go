package metrics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrSingleClass reports that a score needing both classes saw only one.
	ErrSingleClass = errors.New("only one class present in labels")
	// ErrMonotonic reports an x axis that is neither increasing nor decreasing.
	ErrMonotonic = errors.New("x is neither increasing nor decreasing")
)

// PrecisionRecallCurve sweeps every distinct score as a decision threshold.
// Outputs are ordered by increasing threshold; precision and recall carry one
// extra trailing point (precision 1, recall 0) with no threshold. When yTrue
// has no positives, recall is 1 at every threshold.
func PrecisionRecallCurve(yTrue []int, scores []float64) (precision, recall, thresholds []float64, err error) {
	tps, fps, thr, err := binaryCurve(yTrue, scores)
	if err != nil {
		return nil, nil, nil, err
	}
	n := len(thr)
	precision = make([]float64, 0, n+1)
	recall = make([]float64, 0, n+1)
	thresholds = make([]float64, 0, n)
	totalPos := tps[n-1]
	for i := n - 1; i >= 0; i-- {
		precision = append(precision, tps[i]/(tps[i]+fps[i]))
		if totalPos == 0 {
			recall = append(recall, 1)
		} else {
			recall = append(recall, tps[i]/totalPos)
		}
		thresholds = append(thresholds, thr[i])
	}
	precision = append(precision, 1)
	recall = append(recall, 0)
	return precision, recall, thresholds, nil
}

// binaryCurve returns cumulative true and false positive counts at each
// distinct score, scores taken in decreasing order.
func binaryCurve(yTrue []int, scores []float64) (tps, fps, thr []float64, err error) {
	if len(yTrue) != len(scores) {
		return nil, nil, nil, fmt.Errorf("%w: %d labels vs %d scores", ErrLength, len(yTrue), len(scores))
	}
	if len(yTrue) == 0 {
		return nil, nil, nil, ErrEmpty
	}
	if err := checkLabels(yTrue); err != nil {
		return nil, nil, nil, err
	}
	for i, s := range scores {
		if math.IsNaN(s) {
			return nil, nil, nil, fmt.Errorf("score at position %d is NaN", i)
		}
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	var tp, fp float64
	for k, i := range order {
		if yTrue[i] == 1 {
			tp++
		} else {
			fp++
		}
		if k+1 < len(order) && scores[order[k+1]] == scores[i] {
			continue
		}
		tps = append(tps, tp)
		fps = append(fps, fp)
		thr = append(thr, scores[i])
	}
	return tps, fps, thr, nil
}

// AUC integrates y over x with the trapezoidal rule. x may be increasing or
// decreasing but must be monotonic.
func AUC(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d x vs %d y", ErrLength, len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("need at least 2 points to compute area, got %d", len(x))
	}
	xs := append([]float64(nil), x...)
	ys := append([]float64(nil), y...)
	if !sort.Float64sAreSorted(xs) {
		reverse(xs)
		reverse(ys)
		if !sort.Float64sAreSorted(xs) {
			return 0, ErrMonotonic
		}
	}
	return integrate.Trapezoidal(xs, ys), nil
}

// PRAUC is the area under the precision-recall curve, always within [0,1].
func PRAUC(yTrue []int, scores []float64) (float64, error) {
	p, r, _, err := PrecisionRecallCurve(yTrue, scores)
	if err != nil {
		return 0, err
	}
	a, err := AUC(r, p)
	if err != nil {
		return 0, err
	}
	return clamp01(a), nil
}

// ROCAUC is the area under the receiver operating characteristic curve.
func ROCAUC(yTrue []int, scores []float64) (float64, error) {
	if len(yTrue) != len(scores) {
		return 0, fmt.Errorf("%w: %d labels vs %d scores", ErrLength, len(yTrue), len(scores))
	}
	if err := checkLabels(yTrue); err != nil {
		return 0, err
	}
	y := append([]float64(nil), scores...)
	classes := make([]bool, len(yTrue))
	var pos int
	for i, v := range yTrue {
		classes[i] = v == 1
		pos += v
	}
	if pos == 0 || pos == len(yTrue) {
		return 0, ErrSingleClass
	}
	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return clamp01(integrate.Trapezoidal(fpr, tpr)), nil
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
