package dataio

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// TrainTestSplit partitions t into train and test tables, stratified by the
// label column so both parts keep the class ratio. The same seed always
// yields the same split. Row order inside each part follows the source table.
func TrainTestSplit(t *Table, label string, testSize float64, seed int64) (train, test *Table, err error) {
	if t == nil {
		return nil, nil, ErrNilTable
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size must be in (0,1), got %v", testSize)
	}
	idx := t.ColumnIndex(label)
	if idx < 0 {
		return nil, nil, fmt.Errorf("label column %q not found", label)
	}
	strata := map[string][]int{}
	for i, row := range t.Rows {
		k := strings.TrimSpace(row[idx])
		strata[k] = append(strata[k], i)
	}
	keys := make([]string, 0, len(strata))
	for k := range strata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rng := rand.New(rand.NewSource(seed))
	var trainIdx, testIdx []int
	for _, k := range keys {
		rows := strata[k]
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		nTest := int(math.Round(float64(len(rows)) * testSize))
		// Keep at least one row of each class on both sides when the class allows it.
		if nTest == 0 && len(rows) > 1 {
			nTest = 1
		}
		if nTest == len(rows) && len(rows) > 1 {
			nTest--
		}
		testIdx = append(testIdx, rows[:nTest]...)
		trainIdx = append(trainIdx, rows[nTest:]...)
	}
	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return t.Subset(trainIdx), t.Subset(testIdx), nil
}
