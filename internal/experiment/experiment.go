// Package experiment records evaluation runs on disk so models can be
// compared across invocations.
package experiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/fraudeval/internal/utils"
	"github.com/google/uuid"
)

const (
	experimentFileName = "experiment.json"
)

// Experiment is a named collection of evaluation runs persisted on disk.
type Experiment struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Runs        map[string]*Run `json:"runs"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Not serialized: on-disk location of the experiment.json
	rootDir string `json:"-"`
}

// NewExperiment constructs an in-memory experiment. Call Save() to persist.
func NewExperiment(name, description, rootDir string) *Experiment {
	now := time.Now()
	return &Experiment{
		Name:        name,
		Description: description,
		Runs:        make(map[string]*Run),
		CreatedAt:   now,
		UpdatedAt:   now,
		rootDir:     rootDir,
	}
}

// LoadExperiment loads experiment.json from the provided directory.
func LoadExperiment(dir string) (*Experiment, error) {
	path := filepath.Join(dir, experimentFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("experiment not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read experiment: %w", err)
	}
	var e Experiment
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("parse experiment: %w", err)
	}
	if e.Runs == nil {
		e.Runs = make(map[string]*Run)
	}
	e.rootDir = dir
	return &e, nil
}

// Exists reports whether dir already holds an experiment.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, experimentFileName))
	return err == nil
}

// List returns the names of experiments stored directly under root, sorted.
func List(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read experiments dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && Exists(filepath.Join(root, e.Name())) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// RootDir returns the on-disk experiment directory path.
func (e *Experiment) RootDir() string { return e.rootDir }

// Save writes experiment.json using atomic write.
func (e *Experiment) Save() error {
	if e.rootDir == "" {
		return errors.New("experiment root directory not set")
	}
	if err := utils.EnsureDir(e.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	e.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(e)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(e.rootDir, experimentFileName), data)
}

// AddRun stores r under a fresh id and returns the id.
func (e *Experiment) AddRun(r Run) string {
	r.ID = uuid.NewString()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if e.Runs == nil {
		e.Runs = make(map[string]*Run)
	}
	e.Runs[r.ID] = &r
	e.UpdatedAt = time.Now()
	return r.ID
}

// Leaderboard returns runs ordered by AUC-PR (best first), ties broken by
// fraud-class F1 and then creation time.
func (e *Experiment) Leaderboard() []*Run {
	runs := make([]*Run, 0, len(e.Runs))
	for _, r := range e.Runs {
		runs = append(runs, r)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		a, b := runs[i], runs[j]
		if a.AUCPR != b.AUCPR {
			return a.AUCPR > b.AUCPR
		}
		if a.FraudF1() != b.FraudF1() {
			return a.FraudF1() > b.FraudF1()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return runs
}

// Summary renders the experiment as Markdown with the leaderboard and the
// best run's confusion counts.
func (e *Experiment) Summary() (string, error) {
	if e == nil {
		return "", errors.New("experiment is nil")
	}
	if len(e.Runs) == 0 {
		return "", fmt.Errorf("experiment %q has no runs", e.Name)
	}
	var sb strings.Builder
	sb.WriteString("[EXPERIMENT]\n")
	sb.WriteString(e.Name)
	if e.Description != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Description)
		sb.WriteString(")")
	}
	sb.WriteString("\n\n[LEADERBOARD]\n")
	sb.WriteString("| # | Run | Model | AUC-PR | ROC AUC | Fraud F1 | Accuracy |\n")
	sb.WriteString("|---|-----|-------|--------|---------|----------|----------|\n")
	board := e.Leaderboard()
	for i, r := range board {
		fmt.Fprintf(&sb, "| %d | %s | %s | %.4f | %s | %.4f | %.4f |\n",
			i+1, r.Label(), r.Model, r.AUCPR, r.ROCAUCString(), r.FraudF1(), r.Accuracy)
	}
	best := board[0]
	sb.WriteString("\n[BEST RUN]\n")
	fmt.Fprintf(&sb, "%s (%s) trained on %s, tested on %s\n", best.Label(), best.ID, orDash(best.TrainPath), orDash(best.TestPath))
	fmt.Fprintf(&sb, "TN=%d FP=%d FN=%d TP=%d\n", best.Confusion[0][0], best.Confusion[0][1], best.Confusion[1][0], best.Confusion[1][1])
	if best.PlotPath != "" {
		fmt.Fprintf(&sb, "Plot: %s\n", best.PlotPath)
	}
	return sb.String(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
