// Package analysis profiles a loaded dataset before modelling: column kinds,
// summary statistics, outliers, class balance and label correlations.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/fraudeval/internal/dataio"
	"gonum.org/v1/gonum/stat"
)

// Column kinds in a profile.
const (
	KindNumeric     = "numeric"
	KindCategorical = "categorical"
	KindText        = "text"
	KindEmpty       = "empty"
)

// maxCategories is the distinct-value limit for a categorical column.
const maxCategories = 50

// ImbalanceShare is the minority-class share below which a note is added.
const ImbalanceShare = 0.10

// Options controls profiling.
type Options struct {
	// Label names the class column; empty skips balance and correlations.
	Label string
	// SampleRows determines how many leading rows to include in the report.
	SampleRows int
	// Outlier detection via robust Z-score (MAD). If Outliers is true, counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
}

// DefaultOptions returns reasonable defaults for dataset profiling.
func DefaultOptions() Options {
	return Options{
		Label:            "Class",
		SampleRows:       5,
		Outliers:         true,
		OutlierThreshold: 3.5,
	}
}

// Report is a markdown-friendly profile of a dataset.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Label    string
	Balance  []ClassCount
	LabelCor []LabelCorr
	Samples  [][]string
	Header   []string
	Warnings []string
}

// ColumnSummary captures inferred kind and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min, Max, Mean, Std float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues    []CategoryCount
	ExampleTexts []string
}

type CategoryCount struct {
	Value string
	Count int
}

// ClassCount is the frequency of one label value.
type ClassCount struct {
	Value string
	Count int
	Share float64
}

// LabelCorr is the Pearson correlation of a numeric column with the label.
type LabelCorr struct {
	Column string
	R      float64
}

// Profile summarises t. A nil table yields an empty report with a note.
func Profile(t *dataio.Table, name string, opt Options) *Report {
	rep := &Report{Name: name, Label: opt.Label}
	if t == nil {
		rep.Warnings = append(rep.Warnings, "no table loaded")
		return rep
	}
	rep.Rows = t.NumRows()
	rep.Header = append([]string(nil), t.Columns...)
	sampleRows := opt.SampleRows
	if sampleRows <= 0 {
		sampleRows = 5
	}
	rep.Samples = t.Head(sampleRows)

	numeric := make(map[int][]float64)
	for j, col := range t.Columns {
		s, vals := summarize(t, j, col, opt)
		if s.Kind == KindNumeric {
			numeric[j] = vals
		}
		rep.Cols = append(rep.Cols, s)
	}

	if opt.Label == "" {
		return rep
	}
	li := t.ColumnIndex(opt.Label)
	if li < 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("label column %q not found; class balance skipped", opt.Label))
		return rep
	}
	rep.Label = t.Columns[li]
	rep.Balance = balance(t, li)
	switch {
	case len(rep.Balance) == 1:
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("label %q holds a single class; precision-recall and ROC curves are undefined", rep.Label))
	case len(rep.Balance) > 2:
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("label %q has %d distinct values; binary 0/1 labels are expected", rep.Label, len(rep.Balance)))
	case len(rep.Balance) == 2:
		minority := math.Min(rep.Balance[0].Share, rep.Balance[1].Share)
		if minority < ImbalanceShare {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("classes are imbalanced (minority share %.2f%%); prefer AUC-PR and fraud-class recall over accuracy", minority*100))
		}
	}
	if _, ok := numeric[li]; ok {
		rep.LabelCor = labelCorrelations(t, li, numeric)
	}
	return rep
}

func summarize(t *dataio.Table, j int, name string, opt Options) (ColumnSummary, []float64) {
	s := ColumnSummary{Name: name}
	var vals []float64
	cats := map[string]int{}
	allNumeric := true
	for _, row := range t.Rows {
		v := strings.TrimSpace(row[j])
		if v == "" {
			s.Missing++
			continue
		}
		s.NonNull++
		cats[v]++
		if allNumeric {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				allNumeric = false
				continue
			}
			vals = append(vals, x)
		}
		if len(s.ExampleTexts) < 3 {
			s.ExampleTexts = append(s.ExampleTexts, v)
		}
	}
	s.Unique = len(cats)
	switch {
	case s.NonNull == 0:
		s.Kind = KindEmpty
		s.ExampleTexts = nil
	case allNumeric:
		s.Kind = KindNumeric
		s.ExampleTexts = nil
		s.Min, s.Max = vals[0], vals[0]
		for _, x := range vals {
			s.Min = math.Min(s.Min, x)
			s.Max = math.Max(s.Max, x)
		}
		if len(vals) > 1 {
			s.Mean, s.Std = stat.MeanStdDev(vals, nil)
		} else {
			s.Mean = vals[0]
		}
		if opt.Outliers && len(vals) >= 8 {
			thr := opt.OutlierThreshold
			if thr <= 0 {
				thr = 3.5
			}
			s.OutliersCount, s.OutliersMaxAbsZ = robustOutliers(vals, thr)
			s.OutlierThreshold = thr
		}
		return s, vals
	case s.Unique <= maxCategories:
		s.Kind = KindCategorical
		s.ExampleTexts = nil
		s.TopValues = topValues(cats, 8)
	default:
		s.Kind = KindText
	}
	return s, nil
}

func topValues(cats map[string]int, n int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > n {
		tops = tops[:n]
	}
	return tops
}

func balance(t *dataio.Table, li int) []ClassCount {
	counts := map[string]int{}
	total := 0
	for _, row := range t.Rows {
		v := strings.TrimSpace(row[li])
		if v == "" {
			continue
		}
		counts[v]++
		total++
	}
	out := make([]ClassCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ClassCount{Value: v, Count: c, Share: float64(c) / float64(total)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// labelCorrelations pairs every other numeric column with the label over rows
// where both cells are present, ordered by |r| descending.
func labelCorrelations(t *dataio.Table, li int, numeric map[int][]float64) []LabelCorr {
	var out []LabelCorr
	for j := range t.Columns {
		if j == li {
			continue
		}
		if _, ok := numeric[j]; !ok {
			continue
		}
		var xs, ys []float64
		for _, row := range t.Rows {
			x, errX := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
			y, errY := strconv.ParseFloat(strings.TrimSpace(row[li]), 64)
			if errX != nil || errY != nil {
				continue
			}
			xs = append(xs, x)
			ys = append(ys, y)
		}
		if len(xs) < 2 {
			continue
		}
		r := stat.Correlation(xs, ys, nil)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		out = append(out, LabelCorr{Column: t.Columns[j], R: math.Max(-1, math.Min(1, r))})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].R), math.Abs(out[j].R)
		if ai == aj {
			return out[i].Column < out[j].Column
		}
		return ai > aj
	})
	return out
}

// robustOutliers counts values with |0.6745*(x-median)/MAD| above thr.
func robustOutliers(vals []float64, thr float64) (count int, maxAbsZ float64) {
	median, mad := medianMAD(vals)
	if mad == 0 {
		return 0, 0
	}
	for _, v := range vals {
		az := math.Abs(0.6745 * (v - median) / mad)
		if az > thr {
			count++
		}
		maxAbsZ = math.Max(maxAbsZ, az)
	}
	return count, maxAbsZ
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	cp := append([]float64(nil), vals...)
	sort.Float64s(cp)
	median = middle(cp)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	return median, middle(dev)
}

func middle(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
