// Package chart renders evaluation figures with gonum/plot.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"

	"github.com/KaramelBytes/fraudeval/internal/metrics"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Figure size, matching a 6x4 inch canvas.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// Figure is a rendered confusion-matrix heatmap.
type Figure struct {
	Plot   *plot.Plot
	Matrix metrics.ConfusionMatrix
	Title  string
}

// cmGrid lays the matrix out for plotter.HeatMap. Grid row 0 sits at the
// bottom of the canvas, so it carries actual class 1 and "Not Fraud" ends up
// on top as in a printed matrix.
type cmGrid struct{ cm metrics.ConfusionMatrix }

func (g cmGrid) Dims() (c, r int)   { return 2, 2 }
func (g cmGrid) Z(c, r int) float64 { return float64(g.cm[1-r][c]) }
func (g cmGrid) X(c int) float64    { return float64(c) }
func (g cmGrid) Y(r int) float64    { return float64(r) }

// ConfusionMatrix computes the 2x2 matrix for yTrue/yPred and draws it as an
// annotated heatmap.
func ConfusionMatrix(yTrue, yPred []int, title string) (*Figure, error) {
	cm, err := metrics.NewConfusionMatrix(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	return Heatmap(cm, title)
}

// Heatmap draws an already computed confusion matrix.
func Heatmap(cm metrics.ConfusionMatrix, title string) (*Figure, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Predicted"
	p.Y.Label.Text = "Actual"

	pal := blues(64)
	hm := plotter.NewHeatMap(cmGrid{cm}, pal)
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	xys := make(plotter.XYs, 0, 4)
	texts := make([]string, 0, 4)
	for actual := 0; actual < 2; actual++ {
		for predicted := 0; predicted < 2; predicted++ {
			xys = append(xys, plotter.XY{X: float64(predicted), Y: float64(1 - actual)})
			texts = append(texts, strconv.Itoa(cm[actual][predicted]))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("annotate heatmap: %w", err)
	}
	mid := hm.Min + (hm.Max-hm.Min)/2
	for i := range labels.TextStyle {
		v := float64(cm[i/2][i%2])
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(14)
		if v > mid {
			labels.TextStyle[i].Color = color.White
		} else {
			labels.TextStyle[i].Color = color.Black
		}
	}
	p.Add(labels)

	p.X.Min, p.X.Max = -0.5, 1.5
	p.Y.Min, p.Y.Max = -0.5, 1.5
	p.X.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: 0, Label: metrics.ClassNames[0]},
		{Value: 1, Label: metrics.ClassNames[1]},
	})
	p.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: 0, Label: metrics.ClassNames[1]},
		{Value: 1, Label: metrics.ClassNames[0]},
	})
	return &Figure{Plot: p, Matrix: cm, Title: title}, nil
}

// Save writes the figure; the format follows the file extension
// (.png, .svg, .pdf, .jpg).
func (f *Figure) Save(path string) error {
	if err := f.Plot.Save(Width, Height, path); err != nil {
		return fmt.Errorf("save figure: %w", err)
	}
	return nil
}

// PNG renders the figure into memory.
func (f *Figure) PNG() ([]byte, error) {
	wt, err := f.Plot.WriterTo(Width, Height, "png")
	if err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}

// blues is a sequential white-to-navy palette.
type blues int

func (n blues) Colors() []color.Color {
	lo := [3]float64{247, 251, 255}
	hi := [3]float64{8, 48, 107}
	k := int(n)
	if k < 2 {
		k = 2
	}
	out := make([]color.Color, k)
	for i := range out {
		t := float64(i) / float64(k-1)
		out[i] = color.RGBA{
			R: uint8(lo[0] + (hi[0]-lo[0])*t),
			G: uint8(lo[1] + (hi[1]-lo[1])*t),
			B: uint8(lo[2] + (hi[2]-lo[2])*t),
			A: 255,
		}
	}
	return out
}
