package metrics

import (
	"fmt"
	"strings"
)

// ClassScores holds per-class precision, recall, F1 and support.
type ClassScores struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report is a per-class breakdown plus accuracy and averages.
type Report struct {
	Classes     []ClassScores `json:"classes"`
	Accuracy    float64       `json:"accuracy"`
	MacroAvg    ClassScores   `json:"macro_avg"`
	WeightedAvg ClassScores   `json:"weighted_avg"`
	Total       int           `json:"total"`
}

// ClassificationReport compares yTrue with yPred for classes 0 and 1.
// Undefined ratios (zero denominators) are reported as 0.
func ClassificationReport(yTrue, yPred []int) (*Report, error) {
	cm, err := NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	if cm.Total() == 0 {
		return nil, ErrEmpty
	}
	rep := &Report{Total: cm.Total()}
	for c := 0; c < 2; c++ {
		tp := cm[c][c]
		predicted := cm[0][c] + cm[1][c]
		actual := cm[c][0] + cm[c][1]
		p := ratio(tp, predicted)
		r := ratio(tp, actual)
		rep.Classes = append(rep.Classes, ClassScores{
			Label:     fmt.Sprintf("%d", c),
			Precision: p,
			Recall:    r,
			F1:        harmonic(p, r),
			Support:   actual,
		})
	}
	rep.Accuracy = ratio(cm.TN()+cm.TP(), cm.Total())

	rep.MacroAvg = ClassScores{Label: "macro avg", Support: rep.Total}
	rep.WeightedAvg = ClassScores{Label: "weighted avg", Support: rep.Total}
	for _, cs := range rep.Classes {
		rep.MacroAvg.Precision += cs.Precision / 2
		rep.MacroAvg.Recall += cs.Recall / 2
		rep.MacroAvg.F1 += cs.F1 / 2
		w := float64(cs.Support) / float64(rep.Total)
		rep.WeightedAvg.Precision += cs.Precision * w
		rep.WeightedAvg.Recall += cs.Recall * w
		rep.WeightedAvg.F1 += cs.F1 * w
	}
	return rep, nil
}

// Positive returns the scores of the fraud class.
func (r *Report) Positive() ClassScores { return r.Classes[1] }

// String renders the report as a fixed-width text table.
func (r *Report) String() string {
	width := len("weighted avg")
	var b strings.Builder
	fmt.Fprintf(&b, "%*s %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	for _, cs := range r.Classes {
		fmt.Fprintf(&b, "%*s %9.2f %9.2f %9.2f %9d\n", width, cs.Label, cs.Precision, cs.Recall, cs.F1, cs.Support)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%*s %9s %9s %9.2f %9d\n", width, "accuracy", "", "", r.Accuracy, r.Total)
	for _, cs := range []ClassScores{r.MacroAvg, r.WeightedAvg} {
		fmt.Fprintf(&b, "%*s %9.2f %9.2f %9.2f %9d\n", width, cs.Label, cs.Precision, cs.Recall, cs.F1, cs.Support)
	}
	return b.String()
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func harmonic(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}
