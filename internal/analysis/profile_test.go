package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/fraudeval/internal/dataio"
)

func fixture() *dataio.Table {
	t := &dataio.Table{Columns: []string{"Time", "Amount", "Merchant", "Note", "Class"}}
	amounts := []string{"10", "12", "11", "9", "13", "10", "12", "11", "9", "950"}
	merchants := []string{"shop", "shop", "fuel", "shop", "fuel", "shop", "grocer", "shop", "fuel", "online"}
	for i := 0; i < 10; i++ {
		class := "0"
		if i == 9 {
			class = "1"
		}
		note := ""
		if i%2 == 0 {
			note = "n" + string(rune('a'+i))
		}
		t.Rows = append(t.Rows, []string{string(rune('0' + i)), amounts[i], merchants[i], note, class})
	}
	return t
}

func col(r *Report, name string) ColumnSummary {
	for _, c := range r.Cols {
		if c.Name == name {
			return c
		}
	}
	return ColumnSummary{}
}

func TestProfileColumns(t *testing.T) {
	rep := Profile(fixture(), "cc.csv", DefaultOptions())
	if rep.Rows != 10 || len(rep.Cols) != 5 {
		t.Fatalf("rows=%d cols=%d", rep.Rows, len(rep.Cols))
	}
	amt := col(rep, "Amount")
	if amt.Kind != KindNumeric || amt.Min != 9 || amt.Max != 950 {
		t.Fatalf("amount summary: %+v", amt)
	}
	if math.Abs(amt.Mean-104.7) > 1e-9 {
		t.Fatalf("mean = %v", amt.Mean)
	}
	if amt.OutliersCount != 1 || amt.OutlierThreshold != 3.5 {
		t.Fatalf("expected the 950 amount flagged, got %+v", amt)
	}
	m := col(rep, "Merchant")
	if m.Kind != KindCategorical || m.TopValues[0].Value != "shop" || m.TopValues[0].Count != 5 {
		t.Fatalf("merchant summary: %+v", m)
	}
	note := col(rep, "Note")
	if note.Missing != 5 || note.NonNull != 5 {
		t.Fatalf("note missing counts: %+v", note)
	}
}

func TestProfileBalanceAndCorrelations(t *testing.T) {
	rep := Profile(fixture(), "cc.csv", DefaultOptions())
	if len(rep.Balance) != 2 || rep.Balance[0].Count != 9 || rep.Balance[1].Count != 1 {
		t.Fatalf("balance: %+v", rep.Balance)
	}
	if len(rep.LabelCor) == 0 || rep.LabelCor[0].Column != "Amount" || rep.LabelCor[0].R < 0.9 {
		t.Fatalf("amount should dominate label correlations: %+v", rep.LabelCor)
	}
	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]", "File: cc.csv", "Rows: 10", "[SCHEMA]",
		"- Amount: numeric", "[CLASS BALANCE]", "- 1: 1 (10.00%)",
		"[LABEL CORRELATIONS]", "- Amount ~ Class: r=", "[HEAD AND SAMPLE ROWS]",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestProfileNotes(t *testing.T) {
	tb := fixture()
	for i := 0; i < 20; i++ {
		tb.Rows = append(tb.Rows, []string{"1", "10", "shop", "", "0"})
	}
	rep := Profile(tb, "big.csv", DefaultOptions())
	if len(rep.Warnings) != 1 || !strings.Contains(rep.Warnings[0], "imbalanced") {
		t.Fatalf("expected imbalance note, got %v", rep.Warnings)
	}
	if !strings.Contains(rep.Markdown(), "[NOTES]") {
		t.Fatalf("notes section missing")
	}

	rep = Profile(fixture(), "x", Options{Label: "is_fraud"})
	if len(rep.Balance) != 0 || len(rep.Warnings) != 1 {
		t.Fatalf("missing label should only warn: %+v", rep)
	}
	rep = Profile(nil, "x", DefaultOptions())
	if rep.Rows != 0 || len(rep.Warnings) != 1 {
		t.Fatalf("nil table: %+v", rep)
	}
}

func TestMedianMAD(t *testing.T) {
	med, mad := medianMAD([]float64{1, 2, 3, 4, 100})
	if med != 3 || mad != 1 {
		t.Fatalf("median=%v mad=%v", med, mad)
	}
	med, _ = medianMAD([]float64{4, 1, 3, 2})
	if med != 2.5 {
		t.Fatalf("even median=%v", med)
	}
}
