package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/fraudeval/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestConfusionMatrixFigure(t *testing.T) {
	fig, err := ConfusionMatrix([]int{0, 0, 1, 1}, []int{0, 1, 1, 1}, "Confusion Matrix: Logistic")
	require.NoError(t, err)
	assert.Equal(t, metrics.ConfusionMatrix{{1, 1}, {0, 2}}, fig.Matrix)
	assert.Equal(t, "Predicted", fig.Plot.X.Label.Text)
	assert.Equal(t, "Actual", fig.Plot.Y.Label.Text)

	ticks := fig.Plot.X.Tick.Marker.Ticks(fig.Plot.X.Min, fig.Plot.X.Max)
	require.Len(t, ticks, 2)
	assert.Equal(t, "Not Fraud", ticks[0].Label)
	assert.Equal(t, "Fraud", ticks[1].Label)

	b, err := fig.PNG()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestConfusionMatrixUniformCounts(t *testing.T) {
	// Every cell holds 1, so the colour range has zero width.
	fig, err := ConfusionMatrix([]int{0, 0, 1, 1}, []int{0, 1, 0, 1}, "uniform")
	require.NoError(t, err)
	assert.Equal(t, metrics.ConfusionMatrix{{1, 1}, {1, 1}}, fig.Matrix)
	_, err = fig.PNG()
	require.NoError(t, err)
}

func TestConfusionMatrixRejectsBadInput(t *testing.T) {
	_, err := ConfusionMatrix([]int{0, 1}, []int{0}, "x")
	assert.True(t, errors.Is(err, metrics.ErrLength))
	_, err = ConfusionMatrix([]int{0, 2}, []int{0, 1}, "x")
	assert.True(t, errors.Is(err, metrics.ErrLabel))
}

func TestRendererSavesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	opened := ""
	r := &Renderer{Dir: dir, Show: true, Opener: func(p string) error { opened = p; return nil }}
	path, err := r.PlotConfusionMatrix([]int{0, 1, 1}, []int{0, 1, 0}, "Confusion Matrix: KNN")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "confusion-matrix-knn.png"), path)
	assert.Equal(t, path, opened)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestRendererOpenFailureKeepsPath(t *testing.T) {
	boom := errors.New("no viewer")
	r := &Renderer{Dir: t.TempDir(), Show: true, Opener: func(string) error { return boom }}
	path, err := r.PlotConfusionMatrix([]int{0, 1}, []int{0, 1}, "cm")
	assert.True(t, errors.Is(err, boom))
	assert.FileExists(t, path)
}
