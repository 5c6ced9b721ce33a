package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Class", c.LabelColumn)
	assert.Equal(t, 0.2, c.TestSize)
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, "logistic", c.DefaultModel)
	assert.Equal(t, 500, c.LogisticEpochs)
	assert.Equal(t, 5, c.KNNK)
	assert.Equal(t, "plots", c.PlotDir)
	assert.False(t, c.PlotShow)
	assert.Equal(t, filepath.Join(home, ".fraudeval", "experiments"), c.ExperimentsDir)
	assert.Equal(t, "console", c.LogFormat)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("label_column: is_fraud\nknn_k: 7\n"), 0o644))
	t.Setenv("FRAUDEVAL_KNN_K", "9")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "is_fraud", c.LabelColumn)
	assert.Equal(t, 9, c.KNNK)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("test_size: 1.5\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "test_size")

	require.NoError(t, os.WriteFile(path, []byte("label_column: [unclosed\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "read config")
}

func TestSetGetSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)

	require.NoError(t, c.Set("drop_columns", "Time, Amount,"))
	require.NoError(t, c.Set("test_size", "0.3"))
	require.NoError(t, c.Set("plot_show", "true"))
	require.NoError(t, c.Set("default_model", " KNN "))
	assert.Error(t, c.Set("test_size", "0"))
	assert.Error(t, c.Set("knn_k", "-1"))
	assert.Error(t, c.Set("log_format", "xml"))
	assert.Error(t, c.Set("nope", "1"))

	v, err := c.Get("drop_columns")
	require.NoError(t, err)
	assert.Equal(t, "Time,Amount", v)
	for _, k := range Keys {
		_, err := c.Get(k)
		assert.NoError(t, err, k)
	}

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, Save(c, path))
	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Time", "Amount"}, back.DropColumns)
	assert.Equal(t, 0.3, back.TestSize)
	assert.True(t, back.PlotShow)
	assert.Equal(t, "knn", back.DefaultModel)
}
