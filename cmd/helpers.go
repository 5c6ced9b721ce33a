package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/fraudeval/internal/chart"
	cfgpkg "github.com/KaramelBytes/fraudeval/internal/config"
	"github.com/KaramelBytes/fraudeval/internal/dataio"
	"github.com/KaramelBytes/fraudeval/internal/experiment"
	"github.com/KaramelBytes/fraudeval/internal/model"
	"github.com/KaramelBytes/fraudeval/internal/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

func settings() *cfgpkg.Global {
	if cfg == nil {
		loadConfig()
	}
	return cfg
}

// dataset is a feature matrix with its labels.
type dataset struct {
	X     *mat.Dense
	y     []int
	names []string
}

// loadTable reads path fail-soft; a nil table becomes a command error after
// the load diagnostic has been printed.
func loadTable(cmd *cobra.Command, path string) (*dataio.Table, error) {
	d := &dataio.IO{Out: cmd.OutOrStdout()}
	t := d.LoadData(path)
	if t == nil {
		return nil, fmt.Errorf("could not load %s", path)
	}
	return t, nil
}

func toDataset(t *dataio.Table, label string, drop []string) (*dataset, error) {
	X, y, names, err := dataio.XY(t, label, drop)
	if err != nil {
		return nil, err
	}
	return &dataset{X: X, y: y, names: names}, nil
}

// loadTrainTest resolves the train and test sets either from two files or by
// splitting a single data file.
func loadTrainTest(cmd *cobra.Command, train, test, data, label string, drop []string, testSize float64, seed int64) (*dataset, *dataset, error) {
	var trT, teT *dataio.Table
	switch {
	case data != "" && (train != "" || test != ""):
		return nil, nil, fmt.Errorf("use either --data or --train/--test, not both")
	case data != "":
		t, err := loadTable(cmd, data)
		if err != nil {
			return nil, nil, err
		}
		if trT, teT, err = dataio.TrainTestSplit(t, label, testSize, seed); err != nil {
			return nil, nil, err
		}
	case train != "" && test != "":
		var err error
		if trT, err = loadTable(cmd, train); err != nil {
			return nil, nil, err
		}
		if teT, err = loadTable(cmd, test); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("provide --data or both --train and --test")
	}
	tr, err := toDataset(trT, label, drop)
	if err != nil {
		return nil, nil, fmt.Errorf("train set: %w", err)
	}
	te, err := toDataset(teT, label, drop)
	if err != nil {
		return nil, nil, fmt.Errorf("test set: %w", err)
	}
	if strings.Join(tr.names, "\x00") != strings.Join(te.names, "\x00") {
		return nil, nil, fmt.Errorf("train and test feature columns differ: %v vs %v", tr.names, te.names)
	}
	zap.L().Debug("datasets ready",
		zap.Int("train_rows", len(tr.y)), zap.Int("test_rows", len(te.y)),
		zap.Strings("features", tr.names))
	return tr, te, nil
}

func modelParams() model.Params {
	c := settings()
	return model.Params{
		LearningRate: c.LogisticLearningRate,
		Epochs:       c.LogisticEpochs,
		L2:           c.LogisticL2,
		K:            c.KNNK,
	}
}

// paramStrings records the hyperparameters relevant to name.
func paramStrings(name string, p model.Params) map[string]string {
	switch name {
	case "logistic":
		return map[string]string{
			"learning_rate": fmt.Sprint(p.LearningRate),
			"epochs":        fmt.Sprint(p.Epochs),
			"l2":            fmt.Sprint(p.L2),
		}
	case "knn":
		return map[string]string{"k": fmt.Sprint(p.K)}
	}
	return nil
}

func renderer(show bool) *chart.Renderer {
	c := settings()
	return &chart.Renderer{Dir: c.PlotDir, Show: show || c.PlotShow}
}

func experimentsRoot() (string, error) {
	dir, err := utils.ExpandHome(settings().ExperimentsDir)
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("ensure experiments dir: %w", err)
	}
	return dir, nil
}

func resolveExperimentDirByName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("experiment name is required")
	}
	root, err := experimentsRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

// openExperiment loads the named experiment, creating it when create is set.
func openExperiment(name string, create bool) (*experiment.Experiment, error) {
	dir, err := resolveExperimentDirByName(name)
	if err != nil {
		return nil, err
	}
	if !experiment.Exists(dir) {
		if !create {
			return nil, fmt.Errorf("experiment %q not found; run 'fraudeval init %s' first", name, name)
		}
		return experiment.NewExperiment(name, "", dir), nil
	}
	return experiment.LoadExperiment(dir)
}
